package net

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"SquareBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board(rev uint64, ids ...string) state.Snapshot {
	s := state.Snapshot{Revision: rev, Width: state.SurfaceWidth, Height: state.SurfaceHeight}
	for i, id := range ids {
		s.Squares = append(s.Squares, state.Square{
			ID: id, X: float64(i * 10), Y: 5, Width: 100, Height: 100, Color: state.Palette[i%len(state.Palette)],
		})
	}
	return s
}

func startViewer(t *testing.T, h *Hub) (<-chan state.Snapshot, context.CancelFunc) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	v, err := Dial(ctx, strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)

	got := make(chan state.Snapshot, 8)
	go func() {
		_ = v.Run(ctx, func(s state.Snapshot) { got <- s })
	}()
	return got, cancel
}

func next(t *testing.T, ch <-chan state.Snapshot) state.Snapshot {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return state.Snapshot{}
	}
}

func TestHub_NewViewerGetsLatestThenUpdates(t *testing.T) {
	h := NewHub()
	h.Publish(board(1, "a"))
	h.Publish(board(2, "a", "b"))

	got, _ := startViewer(t, h)

	first := next(t, got)
	assert.Equal(t, board(2, "a", "b"), first)
	assert.Equal(t, 1, h.Peers())

	h.Publish(board(3, "b"))
	assert.Equal(t, board(3, "b"), next(t, got))
}

func TestHub_BroadcastsToEveryViewer(t *testing.T) {
	h := NewHub()
	h.Publish(board(1))

	a, _ := startViewer(t, h)
	b, _ := startViewer(t, h)
	next(t, a)
	next(t, b)

	h.Publish(board(2, "x"))
	assert.Equal(t, "x", next(t, a).Squares[0].ID)
	assert.Equal(t, "x", next(t, b).Squares[0].ID)
}

func TestHub_ViewerDisconnectIsNoticed(t *testing.T) {
	h := NewHub()
	h.Publish(board(1))

	got, cancel := startViewer(t, h)
	next(t, got)
	require.Equal(t, 1, h.Peers())

	cancel()
	assert.Eventually(t, func() bool { return h.Peers() == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestHub_Close(t *testing.T) {
	h := NewHub()
	h.Publish(board(1))
	got, _ := startViewer(t, h)
	next(t, got)

	h.Close()
	assert.Equal(t, 0, h.Peers())
	assert.NotPanics(t, func() { h.Publish(board(2)) })
}

func TestDial_NoHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := Dial(ctx, "127.0.0.1:1")
	assert.Error(t, err)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := Listen(0)
	require.NoError(t, err)

	h := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- h.Serve(ctx, ln) }()

	h.Publish(board(4, "z"))
	v, err := Dial(context.Background(), ln.Addr().String())
	require.NoError(t, err)
	defer v.Close()

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestViewer_SkipsInvalidSnapshots(t *testing.T) {
	h := NewHub()
	h.Publish(board(1, "a"))
	got, _ := startViewer(t, h)
	require.Equal(t, uint64(1), next(t, got).Revision)

	huge := board(5, "big")
	huge.Squares[0].Width = 5000
	h.Publish(huge)

	black := board(6, "dark")
	black.Squares[0].Color = "#000000"
	h.Publish(black)

	// A rejected snapshot must not advance the viewer's revision.
	h.Publish(board(3, "ok"))
	s := next(t, got)
	assert.Equal(t, uint64(3), s.Revision)
	assert.Equal(t, "ok", s.Squares[0].ID)

	select {
	case s := <-got:
		t.Fatalf("unexpected snapshot %d", s.Revision)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_RefusesViewersAfterClose(t *testing.T) {
	h := NewHub()
	h.Publish(board(1, "a"))
	h.Close()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	v, err := Dial(ctx, strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	defer v.Close()

	applied := false
	err = v.Run(ctx, func(state.Snapshot) { applied = true })
	assert.Error(t, err)
	assert.NoError(t, ctx.Err(), "viewer should be turned away before the timeout")
	assert.False(t, applied)
	assert.Equal(t, 0, h.Peers())
}
