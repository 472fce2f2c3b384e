// Package stream broadcasts simulation frames to websocket clients.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/ChristopherRabotin/orrery"
	kitlog "github.com/go-kit/kit/log"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait   = 5 * time.Second
	sendBacklog = 8
)

type client struct {
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
}

// Hub serves websocket clients and broadcasts JSON frames to them, each client receiving at most
// the configured number of frames per second. Frames are dropped for slow clients.
type Hub struct {
	upgrader websocket.Upgrader
	limit    rate.Limit
	burst    int
	logger   kitlog.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
}

// NewHub returns a hub sending at most framesPerSecond frames to each client.
// A non positive rate sends every frame.
func NewHub(framesPerSecond float64, logger kitlog.Logger) *Hub {
	limit := rate.Inf
	if framesPerSecond > 0 {
		limit = rate.Limit(framesPerSecond)
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		limit:   limit,
		burst:   1,
		logger:  kitlog.With(logger, "subsys", "stream"),
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the connection and registers the client until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Log("level", "warning", "remote", r.RemoteAddr, "err", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBacklog), limiter: rate.NewLimiter(h.limit, h.burst)}
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Log("level", "info", "remote", r.RemoteAddr, "status", "connected", "clients", n)

	go h.writeLoop(c)
	// Incoming messages are ignored; reading detects the disconnection.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
	h.logger.Log("level", "info", "remote", r.RemoteAddr, "status", "disconnected")
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.conn.Close()
			h.remove(c)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	c.conn.Close()
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends the frame to every client whose rate allows it, and returns how many were sent.
func (h *Hub) Broadcast(frame orrery.Frame) (int, error) {
	msg, err := json.Marshal(frame)
	if err != nil {
		return 0, err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for c := range h.clients {
		if !c.limiter.Allow() {
			continue
		}
		select {
		case c.send <- msg:
			sent++
		default:
			// Slow client: drop the frame.
		}
	}
	return sent, nil
}

// Run broadcasts every frame of the channel until it is closed, then closes the hub.
func (h *Hub) Run(frames <-chan orrery.Frame) {
	for frame := range frames {
		if _, err := h.Broadcast(frame); err != nil {
			h.logger.Log("level", "error", "years", frame.Years, "err", err)
		}
	}
	h.Close()
}

// Close disconnects all the clients and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
