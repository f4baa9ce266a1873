package client

import (
	"context"
	"errors"
	"sync"

	"github.com/shopall-store/storefront-api/models"
	"github.com/shopall-store/storefront-api/pricing"
)

// CheckoutState tracks where a checkout flow is.
type CheckoutState string

const (
	StateEmptyCart  CheckoutState = "empty-cart"
	StateFilling    CheckoutState = "filling"
	StateSubmitting CheckoutState = "submitting"
	StateComplete   CheckoutState = "complete"
)

var (
	ErrCartEmpty        = errors.New("checkout: cart is empty")
	ErrNotAuthenticated = errors.New("checkout: sign in to place an order")
	ErrNotFilling       = errors.New("checkout: order already submitted")
)

// OrderAPI is the slice of the API a checkout needs.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (models.Order, error)
}

// Checkout drives a single order from a cart. Totals always come from
// pricing.Compute so the numbers shown before submit match what the server
// charges.
type Checkout struct {
	mu      sync.Mutex
	state   CheckoutState
	cart    *CartStore
	session *SessionStore
	api     OrderAPI
	address models.Address
	order   *models.Order
}

func NewCheckout(cart *CartStore, session *SessionStore, api OrderAPI) *Checkout {
	c := &Checkout{
		state:   StateFilling,
		cart:    cart,
		session: session,
		api:     api,
	}
	if cart.TotalItems() == 0 {
		c.state = StateEmptyCart
	}
	return c
}

func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Order returns the placed order, nil until Submit succeeds.
func (c *Checkout) Order() *models.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order
}

func (c *Checkout) SetShippingAddress(addr models.Address) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.address = addr
	if c.state == StateEmptyCart && c.cart.TotalItems() > 0 {
		c.state = StateFilling
	}
}

func (c *Checkout) Subtotal() float64 { return c.cart.TotalPrice() }

func (c *Checkout) Totals() pricing.Totals {
	return pricing.Compute(c.cart.TotalPrice())
}

// Submit places the order. On failure the checkout returns to filling so the
// user can retry; on success the local cart is cleared.
func (c *Checkout) Submit(ctx context.Context) (models.Order, error) {
	c.mu.Lock()
	switch c.state {
	case StateFilling:
	case StateEmptyCart:
		c.mu.Unlock()
		return models.Order{}, ErrCartEmpty
	default:
		c.mu.Unlock()
		return models.Order{}, ErrNotFilling
	}
	if c.session != nil && !c.session.IsAuthenticated() {
		c.mu.Unlock()
		return models.Order{}, ErrNotAuthenticated
	}

	items := c.cart.Items()
	if len(items) == 0 {
		c.state = StateEmptyCart
		c.mu.Unlock()
		return models.Order{}, ErrCartEmpty
	}

	req := PlaceOrderRequest{ShippingAddress: c.address}
	for _, it := range items {
		req.Items = append(req.Items, OrderItemRequest{
			ProductID:     it.Product.ID,
			Quantity:      it.Quantity,
			SelectedColor: it.SelectedColor,
			SelectedSize:  it.SelectedSize,
		})
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	order, err := c.api.PlaceOrder(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateFilling
		return models.Order{}, err
	}

	c.cart.ClearCart()
	c.order = &order
	c.state = StateComplete
	return order, nil
}
