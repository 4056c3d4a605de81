package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lo7ol3/SmartShopping/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsHandler pushes display-state and cart updates to UI clients over
// WebSocket. Clients receive a message only when something changed.
type EventsHandler struct {
	app     *app.App
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
}

// NewEventsHandler creates a new EventsHandler backed by the given app.
func NewEventsHandler(a *app.App) *EventsHandler {
	h := &EventsHandler{
		app:     a,
		clients: make(map[*websocket.Conn]bool),
	}
	go h.broadcast()
	return h
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

type eventsMessage struct {
	Snapshot  app.Snapshot `json:"snapshot"`
	Cart      cartResponse `json:"cart"`
	Timestamp int64        `json:"timestamp,omitempty"`
}

// broadcast polls the app and sends a message to all connected clients
// whenever the display state or cart changed.
func (h *EventsHandler) broadcast() {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	var last []byte

	for range ticker.C {
		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		c := h.app.Cart()
		lines := c.Lines()
		cart := cartResponse{
			Lines: make([]cartLineResponse, 0, len(lines)),
			Total: c.Total(),
		}
		for _, line := range lines {
			cart.Lines = append(cart.Lines, cartLineResponse{
				Name:      line.Name,
				UnitPrice: line.UnitPrice,
				Qty:       line.Qty,
				Total:     line.Total(),
			})
		}

		snapshot := h.app.Snapshot()

		// Dedupe on the payload without the timestamp.
		body, err := json.Marshal(eventsMessage{Snapshot: snapshot, Cart: cart})
		if err != nil {
			continue
		}
		if bytes.Equal(body, last) {
			continue
		}
		last = body

		msg, _ := json.Marshal(eventsMessage{
			Snapshot:  snapshot,
			Cart:      cart,
			Timestamp: time.Now().UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
