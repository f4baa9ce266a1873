package wishlistControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopall-store/storefront-api/models"
	"gorm.io/gorm"
)

// POST /api/wishlist/share
//
// Generating a link always makes the wishlist public as a side effect; there
// is no way to get a link without publishing.
func CreateShareLink(db *gorm.DB, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		settings, err := findOrCreateSettings(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate share link"})
			return
		}

		if !settings.IsPublic {
			if err := db.Model(&settings).Update("is_public", true).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate share link"})
				return
			}
			settings.IsPublic = true
		}

		c.JSON(http.StatusOK, gin.H{
			"share_token": settings.ShareToken,
			"share_url":   baseURL + "/wishlist/shared/" + settings.ShareToken,
			"is_public":   true,
		})
	}
}

// GET /api/wishlist/share/:token
//
// Public view: the token is the capability, no session is required.
func GetSharedWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		var settings models.Wishlist
		if err := db.Where("share_token = ?", token).First(&settings).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		if !settings.IsPublic {
			c.JSON(http.StatusForbidden, gin.H{"error": "This wishlist is private"})
			return
		}

		var items []models.WishlistItem
		if err := db.Preload("Product").Where("user_id = ?", settings.UserID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}

		ownerName := "Someone"
		var profile models.Profile
		if err := db.Select("full_name").Where("id = ?", settings.UserID).First(&profile).Error; err == nil {
			if profile.FullName != "" {
				ownerName = profile.FullName
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"title":      settings.Title,
			"owner_name": ownerName,
			"items":      items,
		})
	}
}
