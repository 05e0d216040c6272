package net

import (
	"context"
	"fmt"

	"SquareBoard/internal/state"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Viewer is the CLIENT side of board sharing: a read-only mirror of a host.
type Viewer struct {
	conn   *websocket.Conn
	mirror state.Mirror
}

// Dial connects to the host at addr ("ip:port").
func Dial(ctx context.Context, addr string) (*Viewer, error) {
	url := fmt.Sprintf("ws://%s/ws", addr)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial host %s: %w", addr, err)
	}
	logrus.WithField("host", addr).Info("Connected to host")
	return &Viewer{conn: conn}, nil
}

// LocalAddr is the viewer's end of the connection.
func (v *Viewer) LocalAddr() string {
	return v.conn.LocalAddr().String()
}

// Run reads snapshots from the host and hands every new, valid one to apply. It
// returns when the connection drops or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context, apply func(state.Snapshot)) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			v.conn.Close()
		case <-done:
		}
	}()

	for {
		var msg Message
		if err := v.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read from host: %w", err)
		}
		if msg.Type != MsgSnapshot || msg.Snapshot == nil {
			logrus.WithField("type", msg.Type).Debug("Ignoring message")
			continue
		}
		if err := msg.Snapshot.Validate(); err != nil {
			logrus.WithError(err).WithField("revision", msg.Snapshot.Revision).Warn("Ignoring invalid snapshot from host")
			continue
		}
		if v.mirror.Apply(*msg.Snapshot) {
			apply(*msg.Snapshot)
		}
	}
}

func (v *Viewer) Close() error {
	return v.conn.Close()
}
