package models

import "time"

// Product categories shown on the storefront.
const (
	CategoryNewArrivals = "new-arrivals"
	CategoryTrending    = "trending"
)

type Product struct {
	ID            string    `gorm:"primaryKey" json:"id"` // UUID-shaped row id
	Name          string    `gorm:"not null" json:"name"`
	Price         float64   `gorm:"not null" json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"` // set only for sale items
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	Image         string    `gorm:"not null" json:"image"`
	Images        []string  `gorm:"serializer:json" json:"images,omitempty"`
	Colors        []string  `gorm:"serializer:json" json:"colors"`
	Sizes         []int     `gorm:"serializer:json" json:"sizes,omitempty"`
	Category      string    `gorm:"index" json:"category"`
	Description   string    `json:"description,omitempty"`
	Details       []string  `gorm:"serializer:json" json:"details,omitempty"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"index;not null" json:"product_id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
