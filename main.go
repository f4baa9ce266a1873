package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/config"
	emailControllers "github.com/shopall-store/storefront-api/controllers/email"
	stockcontrollers "github.com/shopall-store/storefront-api/controllers/stock"
	"github.com/shopall-store/storefront-api/models"
	"github.com/shopall-store/storefront-api/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	cfg := config.Load()

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.GuestUser{},
		&models.Product{},
		&models.Review{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Wishlist{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	if err := catalog.Seed(db); err != nil {
		log.Fatalf("❌ Catalog seed failed: %v", err)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	hub := stockcontrollers.NewHub()
	go hub.Run()

	mailer, err := emailControllers.NewMailer(cfg)
	if err != nil {
		log.Printf("⚠️ Mailer disabled: %v", err)
		mailer = nil
	}

	routes.SetupRoutes(r, db, cfg, hub, mailer)

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}
