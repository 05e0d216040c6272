package net

import (
	"fmt"
	"net"
	"strings"

	"github.com/sirupsen/logrus"
)

// LinkScheme prefixes share links, e.g. squareboard://192.168.1.4:8888.
const LinkScheme = "squareboard://"

// OutgoingIP finds the preferred local IP address for the host to share.
func OutgoingIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// no route out; look at the interfaces instead
		return localIPFallback()
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

func localIPFallback() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		logrus.WithError(err).Warn("Could not list interface addresses")
		return "127.0.0.1"
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	logrus.Warn("No suitable local IP found, share link will use loopback")
	return "127.0.0.1"
}

func ShareLink(ip string, port int) string {
	return fmt.Sprintf("%s%s:%d", LinkScheme, ip, port)
}

// ParseShareLink extracts "host:port" from a share link.
func ParseShareLink(link string) (string, bool) {
	if !strings.HasPrefix(link, LinkScheme) {
		return "", false
	}
	addr := strings.TrimSuffix(strings.TrimPrefix(link, LinkScheme), "/")
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return "", false
	}
	return addr, true
}
