package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"SquareBoard/internal/state"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Viewers only ever send control frames.
	maxMessageSize = 512

	sendBuffer = 16
)

const MsgSnapshot = "snapshot"

// Message is the envelope sent from the host to its viewers.
type Message struct {
	Type     string          `json:"type"`
	Snapshot *state.Snapshot `json:"snapshot,omitempty"`
}

// Hub is run by the HOST. It keeps the latest board snapshot and fans every
// change out to the connected viewers.
type Hub struct {
	upgrader websocket.Upgrader

	mu     sync.RWMutex
	peers  map[*Peer]struct{}
	latest []byte
	closed bool
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// viewers connect from the LAN with no browser origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		peers: make(map[*Peer]struct{}),
	}
}

// Publish records s as the current board and queues it for every viewer.
// It never blocks: a viewer that cannot keep up is disconnected.
func (h *Hub) Publish(s state.Snapshot) {
	data, err := json.Marshal(Message{Type: MsgSnapshot, Snapshot: &s})
	if err != nil {
		logrus.WithError(err).Error("Failed to encode snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			logrus.WithField("peer", p.addr).Warn("Viewer send queue full, dropping viewer")
			h.removeLocked(p)
		}
	}
}

// Peers returns the number of connected viewers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// ServeHTTP upgrades the request to a websocket and registers the viewer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).WithField("remote", r.RemoteAddr).Warn("Websocket upgrade failed")
		return
	}
	p := &Peer{
		hub:  h,
		conn: conn,
		addr: r.RemoteAddr,
		send: make(chan []byte, sendBuffer),
	}
	if !h.add(p) {
		logrus.WithField("remote", r.RemoteAddr).Debug("Hub closed, refusing viewer")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "board closed"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}
	go p.writePump()
	go p.readPump()
}

// add registers p unless the hub has been closed.
func (h *Hub) add(p *Peer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.peers[p] = struct{}{}
	if h.latest != nil {
		p.send <- h.latest
	}
	logrus.WithFields(logrus.Fields{"peer": p.addr, "viewers": len(h.peers)}).Info("Viewer connected")
	return true
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(p)
}

func (h *Hub) removeLocked(p *Peer) {
	if _, ok := h.peers[p]; !ok {
		return
	}
	delete(h.peers, p)
	close(p.send)
	logrus.WithFields(logrus.Fields{"peer": p.addr, "viewers": len(h.peers)}).Info("Viewer disconnected")
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for p := range h.peers {
		h.removeLocked(p)
	}
}

// Listen binds the host's sharing port. Binding is done up front so a busy
// port is reported before the window opens.
func Listen(port int) (net.Listener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listen on port %d: %w", port, err)
	}
	return ln, nil
}

// Serve runs the sharing endpoint on ln until ctx is cancelled.
func (h *Hub) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logrus.WithField("addr", ln.Addr().String()).Info("Sharing server listening")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("sharing server: %w", err)
	}
	return nil
}
