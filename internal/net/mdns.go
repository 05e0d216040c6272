package net

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
	"github.com/sirupsen/logrus"
)

const serviceType = "_squareboard._tcp"

var ErrNoHostFound = errors.New("no board host found on the local network")

// Advertise announces the host's sharing port over mDNS. Shut the returned
// server down when the host exits.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("could not get hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(host, serviceType, "", "", port, nil, []string{"SquareBoard"})
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("failed to start mDNS server: %w", err)
	}
	logrus.WithFields(logrus.Fields{"service": serviceType, "port": port}).Info("Advertising board")
	return server, nil
}

// Browse looks for a host for up to timeout and returns the address of the
// first one that answers.
func Browse(ctx context.Context, timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 16)
	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errc := make(chan error, 1)
	go func() { errc <- mdns.Query(params) }()

	for {
		select {
		case e := <-entries:
			if addr, ok := entryAddr(e); ok {
				logrus.WithFields(logrus.Fields{"host": e.Host, "addr": addr}).Info("Found board host")
				return addr, nil
			}
		case err := <-errc:
			if err != nil {
				return "", fmt.Errorf("mdns query: %w", err)
			}
			// the query is over; take anything still buffered
			for {
				select {
				case e := <-entries:
					if addr, ok := entryAddr(e); ok {
						return addr, nil
					}
				default:
					return "", ErrNoHostFound
				}
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func entryAddr(e *mdns.ServiceEntry) (string, bool) {
	if e == nil || e.AddrV4 == nil || e.Port == 0 {
		return "", false
	}
	return fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port), true
}
