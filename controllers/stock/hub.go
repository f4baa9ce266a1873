package stockcontrollers

import (
	"log"

	"github.com/gorilla/websocket"
)

// StockUpdate is the realtime message pushed to every subscriber whenever a
// product's stock changes. Subscription scope is the whole catalog; clients
// filter by id locally.
type StockUpdate struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// Hub owns the set of websocket subscribers. All membership changes and
// broadcasts go through the run loop, so no lock is needed on the client map.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan StockUpdate
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan StockUpdate, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
		case update := <-h.broadcast:
			for conn := range h.clients {
				if err := conn.WriteJSON(update); err != nil {
					log.Printf("⚠️ Dropping stock subscriber: %v", err)
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// Broadcast queues a stock change for delivery to all subscribers.
func (h *Hub) Broadcast(productID string, stock int) {
	h.broadcast <- StockUpdate{Type: "stock.update", ProductID: productID, Stock: stock}
}
