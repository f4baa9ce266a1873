// Package client is the storefront SDK: an HTTP client for the API plus the
// device-local cart, wishlist, session, stock and checkout stores. Store
// mutations apply locally first and sync to the server in the background;
// the store, not the server, is what the user sees during a session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
)

// APIError carries the status and message of a failed API call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs (or clears, with "") the bearer token used for
// authenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// ---- Cart ----

type UpsertCartItemRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selected_color"`
	SelectedSize  int    `json:"selected_size,omitempty"`
}

func (c *Client) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var resp struct {
		Items []models.CartItem `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) UpsertCartItem(ctx context.Context, req UpsertCartItemRequest) error {
	return c.do(ctx, http.MethodPost, "/api/cart", nil, req, nil)
}

// DeleteCartLine removes every row for the product+color pair, regardless of
// size, matching the store's removal key.
func (c *Client) DeleteCartLine(ctx context.Context, productID, color string) error {
	query := url.Values{}
	query.Set("product_id", catalog.ToUUID(productID))
	query.Set("color", color)
	return c.do(ctx, http.MethodDelete, "/api/cart", query, nil, nil)
}

func (c *Client) ClearServerCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", nil, nil, nil)
}

// ---- Wishlist ----

type WishlistPayload struct {
	Items    []models.WishlistItem `json:"items"`
	Settings models.Wishlist       `json:"settings"`
}

type ShareLink struct {
	ShareToken string `json:"share_token"`
	ShareURL   string `json:"share_url"`
	IsPublic   bool   `json:"is_public"`
}

func (c *Client) GetWishlist(ctx context.Context) (WishlistPayload, error) {
	var resp WishlistPayload
	err := c.do(ctx, http.MethodGet, "/api/wishlist", nil, nil, &resp)
	return resp, err
}

func (c *Client) AddWishlistItem(ctx context.Context, productID string) error {
	body := map[string]string{"product_id": catalog.ToUUID(productID)}
	return c.do(ctx, http.MethodPost, "/api/wishlist", nil, body, nil)
}

func (c *Client) RemoveWishlistItem(ctx context.Context, productID string) error {
	query := url.Values{}
	query.Set("product_id", catalog.ToUUID(productID))
	return c.do(ctx, http.MethodDelete, "/api/wishlist", query, nil, nil)
}

func (c *Client) UpdateWishlistSettings(ctx context.Context, isPublic *bool, title *string) error {
	body := map[string]interface{}{}
	if isPublic != nil {
		body["is_public"] = *isPublic
	}
	if title != nil {
		body["title"] = *title
	}
	return c.do(ctx, http.MethodPatch, "/api/wishlist", nil, body, nil)
}

func (c *Client) CreateShareLink(ctx context.Context) (ShareLink, error) {
	var resp ShareLink
	err := c.do(ctx, http.MethodPost, "/api/wishlist/share", nil, nil, &resp)
	return resp, err
}

// ---- Orders ----

type OrderItemRequest struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selected_color"`
	SelectedSize  int    `json:"selected_size,omitempty"`
}

type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress models.Address     `json:"shipping_address"`
}

func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (models.Order, error) {
	var resp struct {
		Order models.Order `json:"order"`
	}
	err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &resp)
	return resp.Order, err
}

func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// ---- Stock ----

func (c *Client) FetchStock(ctx context.Context, productIDs []string) (map[string]int, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(productIDs, ","))

	var resp struct {
		Stock []struct {
			ID    string `json:"id"`
			Stock int    `json:"stock"`
		} `json:"stock"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/stock", query, nil, &resp); err != nil {
		return nil, err
	}

	stock := make(map[string]int, len(resp.Stock))
	for _, row := range resp.Stock {
		stock[row.ID] = row.Stock
	}
	return stock, nil
}

// DialStock opens the realtime stock websocket.
func (c *Client) DialStock(ctx context.Context) (*websocket.Conn, error) {
	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/api/stock/ws"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	return conn, err
}

// ---- Auth ----

type AuthResponse struct {
	Token       string          `json:"token"`
	User        *models.Profile `json:"user"`
	MergeStatus string          `json:"merge_status"`
}

func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (AuthResponse, error) {
	body := map[string]string{"email": email, "password": password, "full_name": fullName}
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil, body, &resp)
	return resp, err
}

func (c *Client) SignIn(ctx context.Context, email, password, guestID string) (AuthResponse, error) {
	body := map[string]string{"email": email, "password": password, "guest_id": guestID}
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", nil, body, &resp)
	return resp, err
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/signout", nil, nil, nil)
}
