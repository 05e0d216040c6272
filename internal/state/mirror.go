package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

var ErrInvalidSnapshot = errors.New("invalid board snapshot")

// Snapshot is the whole board at one revision. It is what gets shared with
// viewers and written to disk.
type Snapshot struct {
	Revision uint64   `json:"revision"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Squares  []Square `json:"squares"`
}

// Mirror tracks which revision a viewer has applied and rejects anything
// older, since snapshots can arrive after a newer one on reconnect.
type Mirror struct {
	mu   sync.Mutex
	last uint64
	seen bool
}

// Apply reports whether s is newer than anything applied so far and records
// it if so.
func (m *Mirror) Apply(s Snapshot) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seen && s.Revision <= m.last {
		logrus.WithFields(logrus.Fields{
			"revision": s.Revision,
			"applied":  m.last,
		}).Debug("Ignoring stale snapshot")
		return false
	}
	m.last = s.Revision
	m.seen = true
	return true
}

// Revision returns the last applied revision.
func (m *Mirror) Revision() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Validate checks that s can be loaded onto a board.
func (s Snapshot) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: surface %vx%v", ErrInvalidSnapshot, s.Width, s.Height)
	}
	ids := make(map[string]struct{}, len(s.Squares))
	for i, sq := range s.Squares {
		if sq.ID == "" {
			return fmt.Errorf("%w: square %d has no id", ErrInvalidSnapshot, i)
		}
		if _, dup := ids[sq.ID]; dup {
			return fmt.Errorf("%w: duplicate square id %q", ErrInvalidSnapshot, sq.ID)
		}
		ids[sq.ID] = struct{}{}
		if sq.Width != SquareSize || sq.Height != SquareSize {
			return fmt.Errorf("%w: square %q is %vx%v", ErrInvalidSnapshot, sq.ID, sq.Width, sq.Height)
		}
		if _, err := ParseColor(sq.Color); err != nil || !inPalette(sq.Color) {
			return fmt.Errorf("%w: square %q has color %q", ErrInvalidSnapshot, sq.ID, sq.Color)
		}
	}
	return nil
}

func WriteSnapshot(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
