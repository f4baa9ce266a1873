package client

import (
	"context"
	"sync"
	"testing"

	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartAPI struct {
	mu      sync.Mutex
	rows    []models.CartItem
	upserts []UpsertCartItemRequest
	deletes []string
	ops     []string
}

func (f *fakeCartAPI) GetCart(ctx context.Context) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows, nil
}

func (f *fakeCartAPI) UpsertCartItem(ctx context.Context, req UpsertCartItemRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts = append(f.upserts, req)
	f.ops = append(f.ops, "upsert")
	return nil
}

func (f *fakeCartAPI) DeleteCartLine(ctx context.Context, productID, color string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, productID+"/"+color)
	f.ops = append(f.ops, "delete")
	return nil
}

func testProduct(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: price}
}

func TestAddToCartMergesSameLine(t *testing.T) {
	store := NewCartStore(nil, nil)
	defer store.Close()

	p := testProduct("3", 49.99)
	store.AddToCart(p, "black", 9)
	store.AddToCart(p, "black", 9)
	store.AddToCart(p, "black", 9)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, store.TotalItems())
}

func TestAddToCartMergesAcrossIDForms(t *testing.T) {
	store := NewCartStore(nil, nil)
	defer store.Close()

	store.AddToCart(testProduct("5", 20), "white", 8)
	store.AddToCart(testProduct(catalog.ToUUID("5"), 20), "white", 8)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestDifferentColorOrSizeKeepsSeparateLines(t *testing.T) {
	store := NewCartStore(nil, nil)
	defer store.Close()

	p := testProduct("1", 10)
	store.AddToCart(p, "black", 9)
	store.AddToCart(p, "white", 9)
	store.AddToCart(p, "black", 10)

	assert.Len(t, store.Items(), 3)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	store := NewCartStore(nil, nil)
	defer store.Close()

	p := testProduct("2", 15)
	store.AddToCart(p, "red", 7)
	store.UpdateQuantity(p.ID, "red", 0)

	assert.Empty(t, store.Items())
	assert.Equal(t, 0, store.TotalItems())
}

func TestRemoveFromCart(t *testing.T) {
	store := NewCartStore(nil, nil)
	defer store.Close()

	store.AddToCart(testProduct("1", 10), "black", 9)
	store.AddToCart(testProduct("2", 20), "black", 9)
	store.RemoveFromCart("1", "black")

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].Product.ID)
}

func TestTotalPrice(t *testing.T) {
	store := NewCartStore(nil, nil)
	defer store.Close()

	assert.Equal(t, 0.0, store.TotalPrice())

	store.AddToCart(testProduct("1", 10.50), "black", 9)
	store.AddToCart(testProduct("1", 10.50), "black", 9)
	store.AddToCart(testProduct("2", 5), "white", 8)

	assert.InDelta(t, 26.0, store.TotalPrice(), 1e-9)
}

func TestMutationsReachServerInBackground(t *testing.T) {
	api := &fakeCartAPI{}
	store := NewCartStore(api, nil)
	defer store.Close()

	store.AddToCart(testProduct("4", 30), "blue", 11)
	store.AddToCart(testProduct("4", 30), "blue", 11)
	store.Flush()

	api.mu.Lock()
	defer api.mu.Unlock()
	require.NotEmpty(t, api.upserts)
	last := api.upserts[len(api.upserts)-1]
	assert.Equal(t, catalog.ToUUID("4"), last.ProductID)
	assert.Equal(t, 2, last.Quantity)
	assert.Equal(t, "blue", last.SelectedColor)
}

func TestReAddAfterRemoveNeverRunsOutOfOrder(t *testing.T) {
	api := &fakeCartAPI{}
	store := NewCartStore(api, nil)
	defer store.Close()

	// Hold the worker so all three mutations land while their tasks are
	// still pending.
	gate := make(chan struct{})
	store.queue.Enqueue("gate", func(context.Context) error {
		<-gate
		return nil
	})

	p := testProduct("9", 40)
	store.AddToCart(p, "black", 9)
	store.RemoveFromCart(p.ID, "black")
	store.AddToCart(p, "black", 9)

	close(gate)
	store.Flush()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Empty(t, api.deletes, "pending delete must be superseded by the re-add")
	require.Equal(t, []string{"upsert"}, api.ops)
	assert.Equal(t, 1, api.upserts[0].Quantity)
}

func TestRemoveSupersedesPendingUpsert(t *testing.T) {
	api := &fakeCartAPI{}
	store := NewCartStore(api, nil)
	defer store.Close()

	gate := make(chan struct{})
	store.queue.Enqueue("gate", func(context.Context) error {
		<-gate
		return nil
	})

	p := testProduct("9", 40)
	store.AddToCart(p, "black", 9)
	store.RemoveFromCart(p.ID, "black")

	close(gate)
	store.Flush()

	assert.Empty(t, store.Items())

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Empty(t, api.upserts, "pending upsert must be superseded by the removal")
	require.Equal(t, []string{"delete"}, api.ops)
}

func TestRemoveFromCartCoversEverySize(t *testing.T) {
	api := &fakeCartAPI{}
	store := NewCartStore(api, nil)
	defer store.Close()

	p := testProduct("9", 40)
	store.AddToCart(p, "black", 9)
	store.AddToCart(p, "black", 10)
	store.Flush()

	store.RemoveFromCart(p.ID, "black")
	store.Flush()

	assert.Empty(t, store.Items())

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, []string{"upsert", "upsert", "delete", "delete"}, api.ops)
}

func TestReAddOneSizeAfterMultiSizeRemove(t *testing.T) {
	api := &fakeCartAPI{}
	store := NewCartStore(api, nil)
	defer store.Close()

	gate := make(chan struct{})
	store.queue.Enqueue("gate", func(context.Context) error {
		<-gate
		return nil
	})

	p := testProduct("9", 40)
	store.AddToCart(p, "black", 9)
	store.AddToCart(p, "black", 10)
	store.RemoveFromCart(p.ID, "black")
	store.AddToCart(p, "black", 9)

	close(gate)
	store.Flush()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 9, items[0].SelectedSize)

	// The re-added line's upsert must land after every pending delete, or
	// the color-wide delete would wipe it from the server.
	api.mu.Lock()
	defer api.mu.Unlock()
	require.NotEmpty(t, api.ops)
	assert.Equal(t, "upsert", api.ops[len(api.ops)-1])
	assert.Equal(t, 1, api.upserts[len(api.upserts)-1].Quantity)
}

func TestSyncWithServerPushesLocalOnlyLines(t *testing.T) {
	api := &fakeCartAPI{}
	store := NewCartStore(api, nil)
	defer store.Close()

	store.AddToCart(testProduct("6", 45), "green", 10)
	store.Flush()

	require.NoError(t, store.SyncWithServer(context.Background()))
	store.Flush()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	api.mu.Lock()
	defer api.mu.Unlock()
	require.NotEmpty(t, api.upserts)
	assert.Equal(t, catalog.ToUUID("6"), api.upserts[len(api.upserts)-1].ProductID)
}

func TestSyncWithServerAdoptsServerRows(t *testing.T) {
	api := &fakeCartAPI{rows: []models.CartItem{
		{
			ProductID:     catalog.ToUUID("7"),
			Quantity:      4,
			SelectedColor: "black",
			SelectedSize:  9,
			Product:       testProduct(catalog.ToUUID("7"), 99),
		},
	}}
	store := NewCartStore(api, nil)
	defer store.Close()

	require.NoError(t, store.SyncWithServer(context.Background()))

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
	assert.InDelta(t, 396.0, store.TotalPrice(), 1e-9)
}
