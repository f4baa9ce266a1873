package client

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
)

const cartStorageKey = "shopall-cart"

// CartItem is one cart line as the client sees it: a product snapshot plus
// the selected options. Lines are unique per (product, color, size).
type CartItem struct {
	Product       models.Product `json:"product"`
	Quantity      int            `json:"quantity"`
	SelectedColor string         `json:"selected_color"`
	SelectedSize  int            `json:"selected_size,omitempty"`
}

// CartAPI is the slice of the server API the cart store syncs through.
type CartAPI interface {
	GetCart(ctx context.Context) ([]models.CartItem, error)
	UpsertCartItem(ctx context.Context, req UpsertCartItemRequest) error
	DeleteCartLine(ctx context.Context, productID, color string) error
}

// CartStore holds the client-visible cart. Mutations apply synchronously to
// local state (and local storage) and enqueue a background sync; the UI never
// waits on the network, and sync failures never roll local state back.
type CartStore struct {
	mu    sync.Mutex
	items []CartItem
	api   CartAPI
	queue *syncQueue
	local *LocalStore
}

func NewCartStore(api CartAPI, local *LocalStore) *CartStore {
	s := &CartStore{api: api, local: local, queue: newSyncQueue()}
	if local != nil {
		if _, err := local.Get(cartStorageKey, &s.items); err != nil {
			log.Printf("⚠️ Failed to restore cart: %v", err)
		}
	}
	return s
}

func cartLineKey(id catalog.Key, color string, size int) string {
	return fmt.Sprintf("cart:%s:%s:%d", id, color, size)
}

func (s *CartStore) persistLocked() {
	if s.local == nil {
		return
	}
	if err := s.local.Put(cartStorageKey, s.items); err != nil {
		log.Printf("⚠️ Failed to persist cart: %v", err)
	}
}

// AddToCart increments the matching line or appends a new one with quantity 1.
func (s *CartStore) AddToCart(product models.Product, color string, size int) {
	s.mu.Lock()
	key := catalog.Canonicalize(product.ID)
	qty := 0
	found := false
	for i := range s.items {
		it := &s.items[i]
		if catalog.Canonicalize(it.Product.ID) == key &&
			it.SelectedColor == color && it.SelectedSize == size {
			it.Quantity++
			qty = it.Quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, CartItem{
			Product:       product,
			Quantity:      1,
			SelectedColor: color,
			SelectedSize:  size,
		})
		qty = 1
	}
	s.persistLocked()
	s.mu.Unlock()

	s.enqueueUpsert(product.ID, color, size, qty)
}

// RemoveFromCart drops every line for the product+color pair.
func (s *CartStore) RemoveFromCart(productID, color string) {
	s.mu.Lock()
	key := catalog.Canonicalize(productID)
	var removedSizes []int
	kept := s.items[:0]
	for _, it := range s.items {
		if catalog.Canonicalize(it.Product.ID) == key && it.SelectedColor == color {
			removedSizes = append(removedSizes, it.SelectedSize)
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.persistLocked()
	s.mu.Unlock()

	if s.api == nil {
		return
	}
	// Deletes share the upsert's per-line conflict key: a removal and a
	// later re-add of the same line collapse to the latest operation.
	if len(removedSizes) == 0 {
		removedSizes = []int{0}
	}
	for _, size := range removedSizes {
		s.queue.Enqueue(cartLineKey(key, color, size), func(ctx context.Context) error {
			return s.api.DeleteCartLine(ctx, productID, color)
		})
	}
}

// UpdateQuantity sets the quantity of every line matching product+color.
// A quantity of zero or less is a removal.
func (s *CartStore) UpdateQuantity(productID, color string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID, color)
		return
	}

	s.mu.Lock()
	key := catalog.Canonicalize(productID)
	var touched []CartItem
	for i := range s.items {
		it := &s.items[i]
		if catalog.Canonicalize(it.Product.ID) == key && it.SelectedColor == color {
			it.Quantity = quantity
			touched = append(touched, *it)
		}
	}
	s.persistLocked()
	s.mu.Unlock()

	for _, it := range touched {
		s.enqueueUpsert(it.Product.ID, it.SelectedColor, it.SelectedSize, quantity)
	}
}

// ClearCart wipes local state only; callers clear server-side rows separately
// (the order API does it as part of checkout).
func (s *CartStore) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.persistLocked()
	s.mu.Unlock()
}

func (s *CartStore) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of line quantities.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity over all lines.
func (s *CartStore) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, it := range s.items {
		total += it.Product.Price * float64(it.Quantity)
	}
	return total
}

// SyncWithServer merges the server cart into local state. Server rows are
// authoritative for lines present on both sides; lines added locally while
// unauthenticated are kept and pushed to the server.
func (s *CartStore) SyncWithServer(ctx context.Context) error {
	if s.api == nil {
		return nil
	}

	rows, err := s.api.GetCart(ctx)
	if err != nil {
		return err
	}

	merged := make([]CartItem, 0, len(rows))
	for _, row := range rows {
		merged = append(merged, CartItem{
			Product:       row.Product,
			Quantity:      row.Quantity,
			SelectedColor: row.SelectedColor,
			SelectedSize:  row.SelectedSize,
		})
	}

	s.mu.Lock()
	var localOnly []CartItem
	for _, local := range s.items {
		localKey := catalog.Canonicalize(local.Product.ID)
		onServer := false
		for _, m := range merged {
			if catalog.Canonicalize(m.Product.ID) == localKey &&
				m.SelectedColor == local.SelectedColor &&
				m.SelectedSize == local.SelectedSize {
				onServer = true
				break
			}
		}
		if !onServer {
			localOnly = append(localOnly, local)
		}
	}
	merged = append(merged, localOnly...)
	s.items = merged
	s.persistLocked()
	s.mu.Unlock()

	for _, it := range localOnly {
		s.enqueueUpsert(it.Product.ID, it.SelectedColor, it.SelectedSize, it.Quantity)
	}
	return nil
}

// Flush blocks until pending background syncs are done.
func (s *CartStore) Flush() {
	s.queue.Wait()
}

// Close stops the background sync worker.
func (s *CartStore) Close() {
	s.queue.Close()
}

func (s *CartStore) enqueueUpsert(productID, color string, size, quantity int) {
	if s.api == nil {
		return
	}
	req := UpsertCartItemRequest{
		ProductID:     catalog.ToUUID(productID),
		Quantity:      quantity,
		SelectedColor: color,
		SelectedSize:  size,
	}
	s.queue.Enqueue(cartLineKey(catalog.Canonicalize(productID), color, size), func(ctx context.Context) error {
		return s.api.UpsertCartItem(ctx, req)
	})
}
