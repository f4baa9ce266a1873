package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemInput struct {
	ProductID     string `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	SelectedColor string `json:"selected_color" binding:"required"`
	SelectedSize  int    `json:"selected_size"`
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var items []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// POST /api/cart
//
// Upsert keyed by (user, product, color, size): the quantity in the request
// replaces the row's quantity, it is not added to it.
func UpsertCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input CartItemInput
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

		item := models.CartItem{
			UserID:        userID,
			ProductID:     productID,
			SelectedColor: input.SelectedColor,
			SelectedSize:  input.SelectedSize,
			Quantity:      input.Quantity,
			AddedAt:       time.Now(),
		}
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "product_id"},
				{Name: "selected_color"}, {Name: "selected_size"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "added_at"}),
		}).Create(&item).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"item": item})
	}
}

// DELETE /api/cart
//
// With an id param, deletes that row; with product_id (+color, +size),
// deletes the matching line; with neither, clears the whole cart.
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		query := db.Where("user_id = ?", userID)
		switch {
		case c.Query("id") != "":
			query = query.Where("id = ?", c.Query("id"))
		case c.Query("product_id") != "":
			query = query.Where("product_id = ?", catalog.ToUUID(c.Query("product_id")))
			if color := c.Query("color"); color != "" {
				query = query.Where("selected_color = ?", color)
			}
			if size := c.Query("size"); size != "" {
				query = query.Where("selected_size = ?", size)
			}
		}

		if err := query.Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
