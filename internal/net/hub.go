package net

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"InkBoard/internal/logger"
	"InkBoard/internal/state"
)

// ErrForeignStroke is returned when a peer addresses a stroke it did not open.
var ErrForeignStroke = fmt.Errorf("%w: stroke belongs to another source", state.ErrContractViolation)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1 << 20
)

// Peer is one connected remote drawer. Each peer is a network input source.
type Peer struct {
	ID     uint64
	Name   string
	Source state.Source

	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (p *Peer) send(msg Message) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(msg)
}

// Hub accepts websocket connections from remote peers and feeds their
// strokes into a store. Rendering stays on the host.
type Hub struct {
	store    *state.Store
	upgrader websocket.Upgrader

	nextID atomic.Uint64
	mu     sync.RWMutex
	peers  map[uint64]*Peer
}

// NewHub creates a hub writing into store.
func NewHub(store *state.Store) *Hub {
	return &Hub{
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			// Peers join from other machines on the LAN.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[uint64]*Peer),
	}
}

// Peers returns the number of connected peers.
func (h *Hub) Peers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// ServeHTTP upgrades the request and serves the peer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Logger().Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	id := h.nextID.Add(1)
	p := &Peer{
		ID:     id,
		Name:   uuid.NewString(),
		Source: state.NetworkSource(id),
		conn:   conn,
	}
	h.add(p)
	defer h.remove(p)

	addr := conn.RemoteAddr().String()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Logger().Warn("peer read failed", "peer", p.Name, "remote", addr, "error", err)
			}
			return
		}
		if err := h.handle(p, msg); err != nil {
			logger.Logger().Warn("peer message rejected", "peer", p.Name, "type", msg.Type, "stroke", msg.Stroke, "error", err)
			if err := p.send(Message{Type: MsgError, Stroke: msg.Stroke, Error: err.Error()}); err != nil {
				return
			}
		}
	}
}

func (h *Hub) handle(p *Peer, msg Message) error {
	switch msg.Type {
	case MsgOpen:
		if msg.Stroke == "" {
			return errors.New("open without stroke id")
		}
		if _, err := h.store.Open(msg.Stroke, p.Source); err != nil {
			return err
		}
		if len(msg.Points) > 0 {
			return h.store.Push(msg.Stroke, msg.Points...)
		}
		return nil
	case MsgPoints:
		if err := h.owned(p, msg.Stroke); err != nil {
			return err
		}
		return h.store.Push(msg.Stroke, msg.Points...)
	case MsgClose:
		if err := h.owned(p, msg.Stroke); err != nil {
			return err
		}
		if len(msg.Points) > 0 {
			if err := h.store.Push(msg.Stroke, msg.Points...); err != nil {
				return err
			}
		}
		return h.store.Close(msg.Stroke)
	}
	return fmt.Errorf("unknown message type %q", msg.Type)
}

func (h *Hub) owned(p *Peer, id string) error {
	s, ok := h.store.Stroke(id)
	if !ok {
		return fmt.Errorf("%w: %s", state.ErrUnknownStroke, id)
	}
	if s.Source != p.Source {
		return fmt.Errorf("%w: %s", ErrForeignStroke, id)
	}
	return nil
}

func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	h.peers[p.ID] = p
	h.mu.Unlock()
	logger.Logger().Info("peer connected", "peer", p.Name, "source", p.Source.String(), "remote", p.conn.RemoteAddr().String())
}

// remove drops the peer and finalizes the stroke it was drawing, as if the
// pointer had been released.
func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	delete(h.peers, p.ID)
	h.mu.Unlock()
	p.conn.Close()

	if id, ok := h.store.ActiveFor(p.Source); ok {
		if err := h.store.Close(id); err != nil {
			logger.Logger().Warn("closing abandoned stroke failed", "stroke", id, "error", err)
		}
	}
	logger.Logger().Info("peer disconnected", "peer", p.Name)
}

// Close disconnects every peer.
func (h *Hub) Close() {
	h.mu.RLock()
	peers := make([]*Peer, 0, len(h.peers))
	for _, p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.RUnlock()

	for _, p := range peers {
		p.writeMu.Lock()
		_ = p.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "host shutting down"),
			time.Now().Add(writeWait))
		p.writeMu.Unlock()
		p.conn.Close()
	}
}
