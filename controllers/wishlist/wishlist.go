package wishlistControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddWishlistItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

type UpdateSettingsInput struct {
	IsPublic *bool   `json:"is_public"`
	Title    *string `json:"title"`
}

// GET /api/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var items []models.WishlistItem
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		var settings models.Wishlist
		err := db.Where("user_id = ?", userID).First(&settings).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No settings row until the first share; report the defaults.
			settings = models.Wishlist{UserID: userID, IsPublic: false, Title: "My Wishlist"}
		}

		c.JSON(http.StatusOK, gin.H{"items": items, "settings": settings})
	}
}

// POST /api/wishlist
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input AddWishlistItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		productID := catalog.ToUUID(input.ProductID)

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		item := models.WishlistItem{
			UserID:    userID,
			ProductID: productID,
			CreatedAt: time.Now(),
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).Create(&item).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

// DELETE /api/wishlist?product_id=...
func RemoveWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		productID := c.Query("product_id")
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		err := db.Where("user_id = ? AND product_id = ?", userID, catalog.ToUUID(productID)).
			Delete(&models.WishlistItem{}).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// PATCH /api/wishlist
func UpdateWishlistSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input UpdateSettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		settings, err := findOrCreateSettings(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist settings"})
			return
		}

		updates := make(map[string]interface{})
		if input.IsPublic != nil {
			updates["is_public"] = *input.IsPublic
		}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if len(updates) > 0 {
			if err := db.Model(&settings).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist settings"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"wishlist": settings})
	}
}

// findOrCreateSettings returns the user's settings row, creating it lazily
// with a fresh share token on first use.
func findOrCreateSettings(db *gorm.DB, userID string) (models.Wishlist, error) {
	var settings models.Wishlist
	err := db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Wishlist{
			UserID:     userID,
			ShareToken: uuid.NewString(),
			Title:      "My Wishlist",
			CreatedAt:  time.Now(),
		}
		if err := db.Create(&settings).Error; err != nil {
			return models.Wishlist{}, err
		}
		return settings, nil
	}
	return settings, err
}
