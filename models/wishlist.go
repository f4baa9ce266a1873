package models

import "time"

// WishlistItem is deduplicated per user by product; the composite unique
// index is the upsert conflict key.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_wishlist_item;index" json:"user_id"`
	ProductID string    `gorm:"uniqueIndex:idx_wishlist_item" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	CreatedAt time.Time `json:"created_at"`
}

// Wishlist holds the per-user sharing settings, created lazily on the first
// share request. ShareToken is the capability for the public share view.
type Wishlist struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"uniqueIndex;not null" json:"user_id"`
	ShareToken string    `gorm:"uniqueIndex;not null" json:"share_token"`
	IsPublic   bool      `json:"is_public"`
	Title      string    `gorm:"default:'My Wishlist'" json:"title"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
