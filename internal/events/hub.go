package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var (
	ErrBufferFull = errors.New("event broadcast channel full, dropping event")
	ErrHubClosed  = errors.New("event hub closed")
)

const (
	defaultBufferSize = 100
	writeTimeout      = 5 * time.Second
)

// Hub manages the websocket clients watching the aircraft feed and broadcasts
// every published event to all of them.
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan Event
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex
}

// NewHub creates a Hub with room for buffer pending events and starts its
// broadcasting goroutine. A non-positive buffer uses the default size.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBufferSize
	}
	hub := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Event, buffer),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	defer close(h.done)
	for {
		select {
		case <-h.quit:
			return
		case e := <-h.broadcast:
			h.send(e)
		}
	}
}

func (h *Hub) send(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		logrus.WithError(err).WithField("event_id", e.ID).Error("Failed to encode event for broadcast.")
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"event_id": e.ID,
				"conn_ptr": fmt.Sprintf("%p", conn),
			}).Warn("Failed to send event to client, unregistering.")
			h.UnregisterClient(conn)
			_ = conn.Close()
		}
	}
}

// RegisterClient adds a connection to the broadcast set.
func (h *Hub) RegisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client registered with event hub.")
}

// UnregisterClient removes a connection. Removing an unknown connection is a no-op.
func (h *Hub) UnregisterClient(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; !ok {
		return
	}
	delete(h.clients, conn)
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Client unregistered from event hub.")
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues e for broadcast without blocking. It fails with ErrBufferFull
// when the queue is full and ErrHubClosed after Close.
func (h *Hub) Publish(_ context.Context, e Event) error {
	select {
	case <-h.quit:
		return ErrHubClosed
	default:
	}

	select {
	case h.broadcast <- e:
		return nil
	default:
		logrus.WithField("event_id", e.ID).Warn("Event broadcast channel full, dropping event.")
		return ErrBufferFull
	}
}

// Close stops broadcasting and closes every registered connection.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.quit)
		<-h.done

		h.mu.Lock()
		defer h.mu.Unlock()
		for conn := range h.clients {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second))
			_ = conn.Close()
			delete(h.clients, conn)
		}
	})
}
