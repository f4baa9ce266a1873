package client

import (
	"context"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/shopall-store/storefront-api/catalog"
)

// DefaultLowStockThreshold marks products worth an urgency hint in the UI.
const DefaultLowStockThreshold = 10

// StockUpdate is a single realtime stock change.
type StockUpdate struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

type stockMessage struct {
	Type      string `json:"type"`
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

// StockStore mirrors the server-side stock column for a set of products.
// Entries are kept under both the raw id and its canonical key so either
// lookup style succeeds. Stock is tri-state: before the first fetch a
// product's stock is unknown, which callers must treat distinctly from zero.
type StockStore struct {
	mu        sync.RWMutex
	stock     map[string]int
	threshold int
	onUpdate  func(StockUpdate)
	conn      *websocket.Conn
	closeOnce sync.Once
}

func newStockStore(onUpdate func(StockUpdate)) *StockStore {
	return &StockStore{
		stock:     make(map[string]int),
		threshold: DefaultLowStockThreshold,
		onUpdate:  onUpdate,
	}
}

// SubscribeStock seeds current stock for the given product ids (either id
// form), then opens a standing subscription to stock-change events. onUpdate
// may be nil.
func SubscribeStock(ctx context.Context, c *Client, productIDs []string, onUpdate func(StockUpdate)) (*StockStore, error) {
	s := newStockStore(onUpdate)

	if len(productIDs) > 0 {
		rowIDs := make([]string, len(productIDs))
		for i, id := range productIDs {
			rowIDs[i] = catalog.ToUUID(id)
		}
		rows, err := c.FetchStock(ctx, rowIDs)
		if err != nil {
			return nil, err
		}
		for id, stock := range rows {
			s.set(id, stock)
		}
	}

	conn, err := c.DialStock(ctx)
	if err != nil {
		return nil, err
	}
	s.conn = conn
	go s.readLoop()

	return s, nil
}

func (s *StockStore) readLoop() {
	for {
		var msg stockMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != "stock.update" {
			continue
		}
		s.Apply(StockUpdate{ProductID: msg.ProductID, Stock: msg.Stock})
	}
}

// Apply patches local state with a stock change and invokes the callback.
func (s *StockStore) Apply(update StockUpdate) {
	s.set(update.ProductID, update.Stock)
	if s.onUpdate != nil {
		s.onUpdate(update)
	}
}

func (s *StockStore) set(productID string, stock int) {
	s.mu.Lock()
	s.stock[productID] = stock
	s.stock[string(catalog.Canonicalize(productID))] = stock
	s.mu.Unlock()
}

// Stock returns a product's known stock; ok is false while it is unknown.
func (s *StockStore) Stock(productID string) (stock int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, found := s.stock[productID]; found {
		return v, true
	}
	v, found := s.stock[string(catalog.Canonicalize(productID))]
	return v, found
}

// IsLowStock reports whether stock is in (0, threshold]; known is false while
// stock is unknown, and callers must not read low as false in that case.
func (s *StockStore) IsLowStock(productID string) (low, known bool) {
	stock, ok := s.Stock(productID)
	if !ok {
		return false, false
	}
	s.mu.RLock()
	threshold := s.threshold
	s.mu.RUnlock()
	return stock > 0 && stock <= threshold, true
}

// IsOutOfStock reports whether stock is exactly zero, with the same tri-state
// contract as IsLowStock.
func (s *StockStore) IsOutOfStock(productID string) (out, known bool) {
	stock, ok := s.Stock(productID)
	if !ok {
		return false, false
	}
	return stock == 0, true
}

// SetLowStockThreshold overrides DefaultLowStockThreshold.
func (s *StockStore) SetLowStockThreshold(threshold int) {
	s.mu.Lock()
	s.threshold = threshold
	s.mu.Unlock()
}

// Close tears down the realtime subscription.
func (s *StockStore) Close() {
	s.closeOnce.Do(func() {
		if s.conn != nil {
			if err := s.conn.Close(); err != nil {
				log.Printf("⚠️ Failed to close stock subscription: %v", err)
			}
		}
	})
}
