package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Address struct {
	FullName   string `json:"full_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order totals are computed once at creation time and persisted, never
// recomputed from the items afterwards.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderRef        string      `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID          string      `gorm:"index;not null" json:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal        float64     `json:"subtotal"`
	Tax             float64     `json:"tax"`
	Shipping        float64     `json:"shipping"`
	Total           float64     `json:"total"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	ShippingAddress Address     `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem stores a denormalized snapshot of the product at time of
// purchase, decoupled from any later catalog change.
type OrderItem struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	OrderID         uint     `gorm:"index" json:"order_id"`
	ProductID       string   `json:"product_id"`
	ProductName     string   `json:"product_name"`
	ProductImage    string   `json:"product_image"`
	ProductColors   []string `gorm:"serializer:json" json:"product_colors"`
	SelectedColor   string   `json:"selected_color"`
	SelectedSize    int      `json:"selected_size,omitempty"`
	PriceAtPurchase float64  `json:"price_at_purchase"`
	Quantity        int      `json:"quantity"`
}
