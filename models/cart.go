package models

import "time"

// CartItem is one cart line. The unique index is the upsert conflict key:
// one row per (user, product, color, size). SelectedSize 0 means "no size";
// a nullable column would break the composite unique index.
type CartItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"uniqueIndex:idx_cart_line;index" json:"user_id"`
	ProductID     string    `gorm:"uniqueIndex:idx_cart_line" json:"product_id"`
	SelectedColor string    `gorm:"uniqueIndex:idx_cart_line" json:"selected_color"`
	SelectedSize  int       `gorm:"uniqueIndex:idx_cart_line" json:"selected_size,omitempty"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	Product       Product   `gorm:"foreignKey:ProductID" json:"product"`
	AddedAt       time.Time `json:"added_at"`
}
