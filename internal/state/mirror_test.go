package state

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMirror_IgnoresStaleRevisions(t *testing.T) {
	var m Mirror

	assert.True(t, m.Apply(Snapshot{Revision: 0}), "first snapshot always applies")
	assert.True(t, m.Apply(Snapshot{Revision: 3}))
	assert.False(t, m.Apply(Snapshot{Revision: 3}))
	assert.False(t, m.Apply(Snapshot{Revision: 2}))
	assert.True(t, m.Apply(Snapshot{Revision: 7}))
	assert.Equal(t, uint64(7), m.Revision())
}

func TestClock_ObserveNeverGoesBack(t *testing.T) {
	var c Clock
	c.Tick()
	c.Observe(10)
	assert.Equal(t, uint64(10), c.Now())
	c.Observe(4)
	assert.Equal(t, uint64(10), c.Now())
	assert.Equal(t, uint64(11), c.Tick())
}

func TestClock_ConcurrentTicks(t *testing.T) {
	var c Clock
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Tick()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(800), c.Now())
}

func TestSnapshot_FileRoundTrip(t *testing.T) {
	c := newTestController(newFakeSurface(), sequence(0.1, 0.2, 0.3, 0.6, 0.7, 0.8))
	c.Add()
	c.Add()
	want := c.Snapshot()

	path := filepath.Join(t.TempDir(), "board.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteSnapshot(f, want))
	require.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := ReadSnapshot(f)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadSnapshot_Rejects(t *testing.T) {
	cases := map[string]string{
		"garbage":      `{not json`,
		"no surface":   `{"width":0,"height":600,"squares":[]}`,
		"missing id":   `{"width":800,"height":600,"squares":[{"x":1,"y":1,"width":100,"height":100,"color":"#FF6B6B"}]}`,
		"duplicate id": `{"width":800,"height":600,"squares":[{"id":"a","width":100,"height":100,"color":"#FF6B6B"},{"id":"a","width":100,"height":100,"color":"#FF6B6B"}]}`,
		"bad size":     `{"width":800,"height":600,"squares":[{"id":"a","width":50,"height":100,"color":"#FF6B6B"}]}`,
		"bad color":    `{"width":800,"height":600,"squares":[{"id":"a","width":100,"height":100,"color":"#000000"}]}`,
		"not a color":  `{"width":800,"height":600,"squares":[{"id":"a","width":100,"height":100,"color":"blue"}]}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSnapshot(strings.NewReader(in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSnapshot))
		})
	}
}

func TestWriteSnapshot_IsIndentedJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, Snapshot{Width: 800, Height: 600}))
	assert.Contains(t, buf.String(), "\n  \"width\": 800")
}

func TestParseColor(t *testing.T) {
	for _, hex := range Palette {
		_, err := ParseColor(hex)
		assert.NoError(t, err, hex)
	}
	_, err := ParseColor("nope")
	assert.Error(t, err)
	assert.Equal(t, ColorOf("#000000"), ColorOf("nope"))
}

func TestToSurface_ZeroSizedDisplayUsesUnitScale(t *testing.T) {
	p := ToSurface(Point{X: 15, Y: 25}, Rect{X: 5, Y: 5}, 800, 600)
	assert.Equal(t, Point{X: 10, Y: 20}, p)
}
