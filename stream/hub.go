package stream

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrQueueFull is returned by Publish when the broadcaster is not keeping up.
var ErrQueueFull = errors.New("frame queue full")

const (
	writeWait      = 10 * time.Second
	clientQueueLen = 16
)

// client is one websocket connection with its own outgoing queue.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected client. Clients whose queue is full
// are dropped rather than slowing the simulation down.
type Hub struct {
	size int

	mu       sync.RWMutex
	clients  map[*client]bool
	upgrader websocket.Upgrader

	broadcast  chan Frame
	register   chan *client
	unregister chan *client
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
}

// NewHub creates a hub for a grid of the given size and starts its broadcaster.
func NewHub(size int) *Hub {
	h := &Hub{
		size:       size,
		clients:    make(map[*client]bool),
		broadcast:  make(chan Frame, 8),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	h.wg.Add(1)
	go h.run()

	return h
}

// Publish queues a frame for every client.
func (h *Hub) Publish(ctx context.Context, f Frame) error {
	select {
	case h.broadcast <- f:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second):
		return ErrQueueFull
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request, sends the hello and keeps the connection
// registered until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	hello, err := json.Marshal(Hello{Type: "config", Size: h.size})
	if err != nil {
		conn.Close()
		return
	}
	c := &client{conn: conn, send: make(chan []byte, clientQueueLen)}
	c.send <- hello

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(c)

	// Client messages are ignored; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// writePump drains one client's queue onto its connection.
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			slog.Debug("websocket write failed", "error", err)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// run owns client membership and broadcasting.
func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.drop(c)

		case f := <-h.broadcast:
			data, err := json.Marshal(f)
			if err != nil {
				slog.Error("failed to encode frame", "error", err)
				continue
			}

			h.mu.RLock()
			var slow []*client
			for c := range h.clients {
				select {
				case c.send <- data:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()

			for _, c := range slow {
				slog.Info("dropping slow websocket client", "remote", c.conn.RemoteAddr().String())
				h.drop(c)
			}
		}
	}
}

// drop removes a client and closes its queue, which ends its write pump.
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Close disconnects every client and stops the broadcaster.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() { close(h.done) })
	h.wg.Wait()
	return nil
}
