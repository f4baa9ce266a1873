package client

import (
	"testing"

	"github.com/shopall-store/storefront-api/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockIsUnknownBeforeFirstUpdate(t *testing.T) {
	s := newStockStore(nil)

	_, known := s.Stock("1")
	assert.False(t, known)

	_, known = s.IsLowStock("1")
	assert.False(t, known, "unknown stock must not read as in-stock or low")

	_, known = s.IsOutOfStock("1")
	assert.False(t, known, "unknown stock must not read as out-of-stock")
}

func TestStockLookupWorksForBothIDForms(t *testing.T) {
	s := newStockStore(nil)
	s.Apply(StockUpdate{ProductID: catalog.ToUUID("3"), Stock: 7})

	stock, known := s.Stock("3")
	require.True(t, known)
	assert.Equal(t, 7, stock)

	stock, known = s.Stock(catalog.ToUUID("3"))
	require.True(t, known)
	assert.Equal(t, 7, stock)
}

func TestIsLowStockBoundary(t *testing.T) {
	s := newStockStore(nil)

	s.Apply(StockUpdate{ProductID: "1", Stock: DefaultLowStockThreshold})
	low, known := s.IsLowStock("1")
	require.True(t, known)
	assert.True(t, low, "stock equal to the threshold counts as low")

	s.Apply(StockUpdate{ProductID: "1", Stock: DefaultLowStockThreshold + 1})
	low, _ = s.IsLowStock("1")
	assert.False(t, low)

	s.Apply(StockUpdate{ProductID: "1", Stock: 0})
	low, _ = s.IsLowStock("1")
	assert.False(t, low, "out of stock is not low stock")
}

func TestIsOutOfStock(t *testing.T) {
	s := newStockStore(nil)

	s.Apply(StockUpdate{ProductID: "2", Stock: 0})
	out, known := s.IsOutOfStock("2")
	require.True(t, known)
	assert.True(t, out)

	s.Apply(StockUpdate{ProductID: "2", Stock: 1})
	out, _ = s.IsOutOfStock("2")
	assert.False(t, out)
}

func TestSetLowStockThreshold(t *testing.T) {
	s := newStockStore(nil)
	s.SetLowStockThreshold(3)

	s.Apply(StockUpdate{ProductID: "4", Stock: 5})
	low, _ := s.IsLowStock("4")
	assert.False(t, low)

	s.Apply(StockUpdate{ProductID: "4", Stock: 3})
	low, _ = s.IsLowStock("4")
	assert.True(t, low)
}

func TestApplyInvokesCallback(t *testing.T) {
	var got []StockUpdate
	s := newStockStore(func(u StockUpdate) { got = append(got, u) })

	s.Apply(StockUpdate{ProductID: "5", Stock: 2})
	s.Apply(StockUpdate{ProductID: "5", Stock: 1})

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[1].Stock)

	stock, known := s.Stock("5")
	require.True(t, known)
	assert.Equal(t, 1, stock, "later updates overwrite earlier ones")
}
