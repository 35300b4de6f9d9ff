package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait       = 5 * time.Second
	broadcastBuffer = 16
)

var ErrHubStopped = errors.New("hub is not running")

// Hub keeps the set of websocket subscribers and broadcasts events to them.
type Hub struct {
	logger     logrus.FieldLogger
	upgrader   websocket.Upgrader
	clients    map[*websocket.Conn]bool
	mu         sync.Mutex
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
}

func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// closes every subscriber.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				_ = client.Close()
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return nil
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.WithField("clients", count).Info("Hub.Run.registered")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				_ = client.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.WithField("clients", count).Info("Hub.Run.unregistered")
		case message := <-h.broadcast:
			h.send(message)
		}
	}
}

func (h *Hub) send(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		_ = client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
			h.logger.WithError(err).Warn("Hub.send.dropClient")
			_ = client.Close()
			delete(h.clients, client)
		}
	}
}

// Clients returns the number of connected subscribers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues the event for every subscriber without waiting. When the
// broadcast buffer is full the event is dropped and logged.
func (h *Hub) Publish(_ context.Context, event Event) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}
	select {
	case h.broadcast <- message:
	default:
		h.logger.WithFields(logrus.Fields{
			"type":   event.Type,
			"action": event.Action,
		}).Warn("Hub.Publish.dropped")
	}
	return nil
}

// ServeHTTP upgrades the request to a websocket and subscribes it until
// the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Hub.ServeHTTP.upgrade")
		return
	}

	select {
	case h.register <- conn:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go func() {
		for {
			// Subscribers never send anything useful, reads only detect the close
			if _, _, err := conn.ReadMessage(); err != nil {
				select {
				case h.unregister <- conn:
				case <-h.done:
				}
				return
			}
		}
	}()
}
