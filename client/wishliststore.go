package client

import (
	"context"
	"log"
	"sync"

	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
)

const wishlistStorageKey = "shopall-wishlist"

// WishlistAPI is the slice of the server API the wishlist store syncs through.
type WishlistAPI interface {
	GetWishlist(ctx context.Context) (WishlistPayload, error)
	AddWishlistItem(ctx context.Context, productID string) error
	RemoveWishlistItem(ctx context.Context, productID string) error
	UpdateWishlistSettings(ctx context.Context, isPublic *bool, title *string) error
	CreateShareLink(ctx context.Context) (ShareLink, error)
}

// WishlistStore mirrors the cart store's optimistic shape for favorites,
// deduplicated by canonical product id. Sharing operations are the
// exception: they are not applied optimistically, the network result decides.
type WishlistStore struct {
	mu         sync.Mutex
	items      []models.Product
	shareToken string
	isPublic   bool
	title      string
	api        WishlistAPI
	queue      *syncQueue
	local      *LocalStore
}

func NewWishlistStore(api WishlistAPI, local *LocalStore) *WishlistStore {
	s := &WishlistStore{api: api, local: local, queue: newSyncQueue(), title: "My Wishlist"}
	if local != nil {
		if _, err := local.Get(wishlistStorageKey, &s.items); err != nil {
			log.Printf("⚠️ Failed to restore wishlist: %v", err)
		}
	}
	return s
}

func (s *WishlistStore) persistLocked() {
	if s.local == nil {
		return
	}
	// Only items persist across sessions; share settings come from the server.
	if err := s.local.Put(wishlistStorageKey, s.items); err != nil {
		log.Printf("⚠️ Failed to persist wishlist: %v", err)
	}
}

// Add favorites a product. Already-favorited products are a no-op.
func (s *WishlistStore) Add(product models.Product) {
	s.mu.Lock()
	key := catalog.Canonicalize(product.ID)
	for _, it := range s.items {
		if catalog.Canonicalize(it.ID) == key {
			s.mu.Unlock()
			return
		}
	}
	s.items = append(s.items, product)
	s.persistLocked()
	s.mu.Unlock()

	if s.api == nil {
		return
	}
	s.queue.Enqueue("wishlist:"+string(key), func(ctx context.Context) error {
		return s.api.AddWishlistItem(ctx, product.ID)
	})
}

func (s *WishlistStore) Remove(productID string) {
	s.mu.Lock()
	key := catalog.Canonicalize(productID)
	kept := s.items[:0]
	for _, it := range s.items {
		if catalog.Canonicalize(it.ID) == key {
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
	s.queue.Enqueue("wishlist:"+string(key), func(ctx context.Context) error {
		return s.api.RemoveWishlistItem(ctx, productID)
	})
}

func (s *WishlistStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := catalog.Canonicalize(productID)
	for _, it := range s.items {
		if catalog.Canonicalize(it.ID) == key {
			return true
		}
	}
	return false
}

func (s *WishlistStore) Items() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *WishlistStore) Clear() {
	s.mu.Lock()
	s.items = nil
	s.persistLocked()
	s.mu.Unlock()
}

func (s *WishlistStore) IsPublic() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isPublic
}

func (s *WishlistStore) ShareToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shareToken
}

// SyncWithServer merges the server wishlist into local state: server items
// are authoritative, local-only items are kept and pushed.
func (s *WishlistStore) SyncWithServer(ctx context.Context) error {
	if s.api == nil {
		return nil
	}

	payload, err := s.api.GetWishlist(ctx)
	if err != nil {
		return err
	}

	merged := make([]models.Product, 0, len(payload.Items))
	for _, row := range payload.Items {
		merged = append(merged, row.Product)
	}

	s.mu.Lock()
	var localOnly []models.Product
	for _, local := range s.items {
		localKey := catalog.Canonicalize(local.ID)
		onServer := false
		for _, m := range merged {
			if catalog.Canonicalize(m.ID) == localKey {
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
	s.shareToken = payload.Settings.ShareToken
	s.isPublic = payload.Settings.IsPublic
	if payload.Settings.Title != "" {
		s.title = payload.Settings.Title
	}
	s.persistLocked()
	s.mu.Unlock()

	for _, it := range localOnly {
		productID := it.ID
		key := catalog.Canonicalize(productID)
		s.queue.Enqueue("wishlist:"+string(key), func(ctx context.Context) error {
			return s.api.AddWishlistItem(ctx, productID)
		})
	}
	return nil
}

// GetShareLink returns the public share URL, lazily creating the settings row
// on first use. Generating a link always makes the wishlist public.
func (s *WishlistStore) GetShareLink(ctx context.Context) (string, error) {
	if s.api == nil {
		return "", &APIError{Status: 401, Message: "sign in to share your wishlist"}
	}

	link, err := s.api.CreateShareLink(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.shareToken = link.ShareToken
	s.isPublic = true
	s.mu.Unlock()

	return link.ShareURL, nil
}

// TogglePublic flips the visibility flag against the server. Unlike item
// mutations there is no optimistic flip: local state changes only on success.
func (s *WishlistStore) TogglePublic(ctx context.Context) error {
	if s.api == nil {
		return &APIError{Status: 401, Message: "sign in to change wishlist visibility"}
	}

	s.mu.Lock()
	desired := !s.isPublic
	s.mu.Unlock()

	if err := s.api.UpdateWishlistSettings(ctx, &desired, nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.isPublic = desired
	s.mu.Unlock()
	return nil
}

// Flush blocks until pending background syncs are done.
func (s *WishlistStore) Flush() {
	s.queue.Wait()
}

// Close stops the background sync worker.
func (s *WishlistStore) Close() {
	s.queue.Close()
}
