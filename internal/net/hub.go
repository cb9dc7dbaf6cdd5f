package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"PaintBoard/internal/export"
	"PaintBoard/internal/state"
)

// SocketPath is where the hub accepts viewers.
const SocketPath = "/ws"

const (
	MsgSnapshot = "snapshot"
	MsgCommit   = string(state.OpCommit)
	MsgReset    = string(state.OpReset)
)

const (
	sendBuffer = 64
	writeWait  = 5 * time.Second
)

// SocketURL builds the viewer URL for a host:port.
func SocketURL(hostport string) string {
	return "ws://" + hostport + SocketPath
}

// Message is one frame sent from the hub to a viewer.
type Message struct {
	Type    string         `json:"type"`
	Strokes []state.Stroke `json:"strokes,omitempty"`
	Stroke  *state.Stroke  `json:"stroke,omitempty"`
	Lamport uint64         `json:"lamport,omitempty"`
	Site    string         `json:"site,omitempty"`
}

func opMessage(op state.Op) Message {
	m := Message{Type: string(op.Type), Stroke: op.Stroke, Lamport: op.Lamport, Site: op.Site}
	if op.Type == state.OpLoad {
		m.Type = MsgSnapshot
		m.Strokes = op.Strokes
		if m.Strokes == nil {
			m.Strokes = []state.Stroke{}
		}
	}
	return m
}

// Op converts a frame back into an op. A snapshot becomes a load.
func (m Message) Op() state.Op {
	op := state.Op{Type: state.OpType(m.Type), Stroke: m.Stroke, Lamport: m.Lamport, Site: m.Site}
	if m.Type == MsgSnapshot {
		op.Type = state.OpLoad
		op.Strokes = m.Strokes
	}
	return op
}

type peer struct {
	conn *websocket.Conn
	send chan []byte
	addr string
}

// Hub mirrors a canvas to any number of read-only websocket viewers. A new
// viewer gets a snapshot of the committed strokes, then every op published
// after it.
type Hub struct {
	canvas   *state.Canvas
	upgrader websocket.Upgrader
	peers    map[*peer]struct{}
	closed   bool
	mu       sync.RWMutex
}

func NewHub(c *state.Canvas) *Hub {
	return &Hub{
		canvas: c,
		upgrader: websocket.Upgrader{
			// viewers are on the LAN and read-only
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[*peer]struct{}),
	}
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Publish sends op to every viewer. A viewer too slow to keep up is dropped.
func (h *Hub) Publish(op state.Op) {
	data, err := json.Marshal(opMessage(op))
	if err != nil {
		log.Printf("[share] encoding %s op: %v", op.Type, err)
		return
	}

	h.mu.RLock()
	var slow []*peer
	for p := range h.peers {
		select {
		case p.send <- data:
		default:
			slow = append(slow, p)
		}
	}
	h.mu.RUnlock()

	for _, p := range slow {
		log.Printf("[share] viewer %s fell behind, dropping", p.addr)
		h.remove(p)
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[share] upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	p := &peer{conn: conn, send: make(chan []byte, sendBuffer), addr: conn.RemoteAddr().String()}
	if err := h.add(p); err != nil {
		log.Printf("[share] viewer %s: %v", p.addr, err)
		conn.Close()
		return
	}
	log.Printf("[share] viewer connected from %s", p.addr)

	go h.writePump(p)
	h.readPump(p)
}

// errHubClosed is returned to viewers that connect while the hub shuts down.
var errHubClosed = errors.New("share hub closed")

// add registers p with the snapshot queued first, so no op published after
// the snapshot is missed.
func (h *Hub) add(p *peer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errHubClosed
	}
	data, err := json.Marshal(Message{Type: MsgSnapshot, Strokes: h.canvas.Strokes()})
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	p.send <- data
	h.peers[p] = struct{}{}
	return nil
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; !ok {
		return
	}
	delete(h.peers, p)
	close(p.send)
}

// readPump drains the connection until the viewer goes away. Viewers never
// send anything the hub acts on.
func (h *Hub) readPump(p *peer) {
	defer func() {
		h.remove(p)
		p.conn.Close()
		log.Printf("[share] viewer %s disconnected", p.addr)
	}()
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(p *peer) {
	defer p.conn.Close()
	for data := range p.send {
		p.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("[share] writing to %s: %v", p.addr, err)
			return
		}
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	p.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// Close disconnects every viewer and turns away new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for p := range h.peers {
		delete(h.peers, p)
		close(p.send)
	}
}

// Handler serves the hub plus read-only views of the live board.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(SocketPath, h)
	mux.HandleFunc("/board.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := export.Save(w, export.NewBoard(h.canvas, "")); err != nil {
			log.Printf("[share] serving board: %v", err)
		}
	})
	mux.HandleFunc("/board.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		export.WriteSVG(w, export.NewBoard(h.canvas, ""), "")
	})
	return mux
}

// Serve runs the hub on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler()}
	errc := make(chan error, 1)
	go func() {
		log.Printf("[share] hub listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("share hub: %w", err)
	case <-ctx.Done():
	}

	h.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("share hub shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
