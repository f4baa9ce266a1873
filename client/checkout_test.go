package client

import (
	"context"
	"errors"
	"testing"

	"github.com/shopall-store/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderAPI struct {
	placed []PlaceOrderRequest
	err    error
	order  models.Order
}

func (f *fakeOrderAPI) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (models.Order, error) {
	f.placed = append(f.placed, req)
	if f.err != nil {
		return models.Order{}, f.err
	}
	return f.order, nil
}

func authedSession() *SessionStore {
	s := NewSessionStore(nil, nil)
	s.user = &models.Profile{ID: "user-1", Email: "a@b.c"}
	return s
}

func TestCheckoutTotalsUseCanonicalRule(t *testing.T) {
	cart := NewCartStore(nil, nil)
	defer cart.Close()
	cart.AddToCart(testProduct("1", 50), "black", 9)
	cart.AddToCart(testProduct("1", 50), "black", 9)

	co := NewCheckout(cart, authedSession(), &fakeOrderAPI{})

	totals := co.Totals()
	assert.InDelta(t, 100.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 10.0, totals.Tax, 1e-9)
	assert.InDelta(t, 0.0, totals.Shipping, 1e-9)
	assert.InDelta(t, 110.0, totals.Total, 1e-9)
}

func TestCheckoutStartsEmptyWithEmptyCart(t *testing.T) {
	cart := NewCartStore(nil, nil)
	defer cart.Close()

	co := NewCheckout(cart, authedSession(), &fakeOrderAPI{})
	assert.Equal(t, StateEmptyCart, co.State())

	_, err := co.Submit(context.Background())
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutRequiresSession(t *testing.T) {
	cart := NewCartStore(nil, nil)
	defer cart.Close()
	cart.AddToCart(testProduct("1", 10), "black", 9)

	co := NewCheckout(cart, NewSessionStore(nil, nil), &fakeOrderAPI{})

	_, err := co.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, StateFilling, co.State())
}

func TestCheckoutSubmitPlacesOrderAndClearsCart(t *testing.T) {
	cart := NewCartStore(nil, nil)
	defer cart.Close()
	cart.AddToCart(testProduct("2", 30), "white", 8)

	api := &fakeOrderAPI{order: models.Order{OrderRef: "ORD-1", Total: 33}}
	co := NewCheckout(cart, authedSession(), api)
	co.SetShippingAddress(models.Address{FullName: "Pat", Street: "1 Main St", City: "Springfield"})

	order, err := co.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateComplete, co.State())
	assert.Equal(t, "ORD-1", order.OrderRef)
	require.NotNil(t, co.Order())
	assert.Equal(t, 0, cart.TotalItems(), "local cart clears after a successful order")

	require.Len(t, api.placed, 1)
	require.Len(t, api.placed[0].Items, 1)
	assert.Equal(t, "Pat", api.placed[0].ShippingAddress.FullName)
}

func TestCheckoutSubmitFailureReturnsToFilling(t *testing.T) {
	cart := NewCartStore(nil, nil)
	defer cart.Close()
	cart.AddToCart(testProduct("3", 20), "red", 7)

	api := &fakeOrderAPI{err: errors.New("insufficient stock for product 3")}
	co := NewCheckout(cart, authedSession(), api)

	_, err := co.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, StateFilling, co.State())
	assert.Equal(t, 1, cart.TotalItems(), "cart survives a failed submit")
	assert.Nil(t, co.Order())

	// Retry works once the server accepts.
	api.err = nil
	api.order = models.Order{OrderRef: "ORD-2"}
	order, err := co.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ORD-2", order.OrderRef)
	assert.Equal(t, StateComplete, co.State())
}

func TestCheckoutRejectsDoubleSubmit(t *testing.T) {
	cart := NewCartStore(nil, nil)
	defer cart.Close()
	cart.AddToCart(testProduct("4", 15), "blue", 10)

	co := NewCheckout(cart, authedSession(), &fakeOrderAPI{})
	_, err := co.Submit(context.Background())
	require.NoError(t, err)

	_, err = co.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotFilling)
}
