package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareLinkRoundTrip(t *testing.T) {
	link := ShareLink("192.168.1.4", 8888)
	assert.Equal(t, "squareboard://192.168.1.4:8888", link)

	addr, ok := ParseShareLink(link + "/")
	assert.True(t, ok)
	assert.Equal(t, "192.168.1.4:8888", addr)
}

func TestParseShareLink_Rejects(t *testing.T) {
	for _, in := range []string{"", "--browse", "http://1.2.3.4:80", "squareboard://nohost"} {
		_, ok := ParseShareLink(in)
		assert.False(t, ok, in)
	}
}

func TestOutgoingIP(t *testing.T) {
	assert.NotEmpty(t, OutgoingIP())
}
