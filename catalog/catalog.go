package catalog

import (
	"log"
	"time"

	"github.com/shopall-store/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultSizes = []int{6, 7, 8, 9, 10, 11, 12}

var defaultDetails = []string{
	"Breathable mesh upper for enhanced ventilation",
	"GEL technology cushioning for superior comfort",
	"Durable rubber outsole with excellent grip",
	"Removable sockliner for custom orthotics",
	"Reflective details for low-light visibility",
}

func price(v float64) *float64 { return &v }

// Products returns the static storefront catalog. Row ids are the UUID form
// of the short catalog ids so database lookups and static lookups meet at the
// same rows.
func Products() []models.Product {
	return []models.Product{
		{
			ID: ToUUID("1"), Name: "Air Zoom Pegasus 37", Price: 160,
			Rating: 5, ReviewCount: 88,
			Image:  "/images/products/air-zoom-pegasus-37.svg",
			Colors: []string{"#f5f5f5", "#1a1a2e", "#e94560"},
			Sizes:  defaultSizes, Category: models.CategoryNewArrivals,
			Description: "Premium athletic footwear with cutting-edge technology and sleek design.",
			Details:     defaultDetails, Stock: 50,
		},
		{
			ID: ToUUID("2"), Name: "Maroon Racer", Price: 160,
			Rating: 5, ReviewCount: 88,
			Image:  "/images/products/maroon.svg",
			Colors: []string{"#c41e3a", "#1a1a2e", "#f5f5f5"},
			Sizes:  defaultSizes, Category: models.CategoryNewArrivals,
			Description: "Engineered for speed and comfort, delivering exceptional performance.",
			Details:     defaultDetails, Stock: 50,
		},
		{
			ID: ToUUID("3"), Name: "Air Max 90 FlyEase", Price: 160,
			Rating: 4, ReviewCount: 75,
			Image:  "/images/products/air-max-90-flyease.svg",
			Colors: []string{"#4169e1", "#1a1a2e", "#f5f5f5"},
			Sizes:  defaultSizes, Category: models.CategoryNewArrivals,
			Description: "Next-level cushioning technology for those who push boundaries.",
			Details:     defaultDetails, Stock: 50,
		},
		{
			ID: ToUUID("4"), Name: "Cosmic Unity", Price: 960, OriginalPrice: price(1160),
			Rating: 5, ReviewCount: 99,
			Image:  "/images/products/cosmic-unity.svg",
			Colors: []string{"#2e8b57", "#1a1a2e", "#f5f5f5"},
			Sizes:  defaultSizes, Category: models.CategoryNewArrivals,
			Description: "Sustainable performance built from recycled materials.",
			Details:     defaultDetails, Stock: 20,
		},
		{
			ID: ToUUID("5"), Name: "Air Max 90 FlyEase", Price: 160,
			Rating: 4, ReviewCount: 65,
			Image:  "/images/products/air-max-90-flyease.svg",
			Colors: []string{"#4169e1", "#2e8b57", "#f5f5f5"},
			Sizes:  defaultSizes, Category: models.CategoryTrending,
			Description: "Iconic style reimagined with hands-free entry.",
			Details:     defaultDetails, Stock: 50,
		},
		{
			ID: ToUUID("6"), Name: "Cosmic Unity", Price: 160,
			Rating: 5, ReviewCount: 88,
			Image:  "/images/products/cosmic-unity.svg",
			Colors: []string{"#2e8b57", "#c41e3a", "#1a1a2e"},
			Sizes:  defaultSizes, Category: models.CategoryTrending,
			Description: "Lightweight responsiveness for all-day wear.",
			Details:     defaultDetails, Stock: 50,
		},
		{
			ID: ToUUID("7"), Name: "Maroon Racer", Price: 375, OriginalPrice: price(400),
			Rating: 5, ReviewCount: 99,
			Image:  "/images/products/maroon.svg",
			Colors: []string{"#c41e3a", "#f5f5f5", "#1a1a2e"},
			Sizes:  defaultSizes, Category: models.CategoryTrending,
			Description: "A bold silhouette for runners who stand out.",
			Details:     defaultDetails, Stock: 30,
		},
		{
			ID: ToUUID("8"), Name: "Air Zoom Pegasus 37", Price: 160,
			Rating: 4, ReviewCount: 75,
			Image:  "/images/products/air-zoom-pegasus-37.svg",
			Colors: []string{"#f5f5f5", "#4169e1", "#e94560"},
			Sizes:  defaultSizes, Category: models.CategoryTrending,
			Description: "The trusted workhorse, tuned for daily miles.",
			Details:     defaultDetails, Stock: 50,
		},
	}
}

// Find returns the catalog entry matching either id form.
func Find(id string) (models.Product, bool) {
	key := Canonicalize(id)
	for _, p := range Products() {
		if Canonicalize(p.ID) == key {
			return p, true
		}
	}
	return models.Product{}, false
}

// Seed upserts the static catalog into the database. Stock is only set on
// first insert: it is mutated server-side afterwards and must survive
// restarts.
func Seed(db *gorm.DB) error {
	for _, p := range Products() {
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "price", "original_price", "image", "images",
				"colors", "sizes", "category", "description", "details", "updated_at",
			}),
		}).Create(&p).Error
		if err != nil {
			return err
		}
	}
	log.Printf("✅ Catalog seeded (%d products)", len(Products()))
	return nil
}
