package orderControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopall-store/storefront-api/catalog"
	"github.com/shopall-store/storefront-api/models"
	"github.com/shopall-store/storefront-api/pricing"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockBroadcaster pushes stock changes to realtime subscribers.
type StockBroadcaster interface {
	Broadcast(productID string, stock int)
}

type OrderItemInput struct {
	ProductID     string `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1"`
	SelectedColor string `json:"selected_color" binding:"required"`
	SelectedSize  int    `json:"selected_size"`
}

type PlaceOrderInput struct {
	Items           []OrderItemInput `json:"items" binding:"required"`
	ShippingAddress models.Address   `json:"shipping_address"`
}

var errInsufficientStock = errors.New("insufficient stock")

// POST /api/orders
//
// Order row, denormalized items, stock decrements and the server-side cart
// wipe all commit in one transaction; a failing item aborts the whole order.
func PlaceOrder(db *gorm.DB, hub StockBroadcaster) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if len(input.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No items in order"})
			return
		}

		var order models.Order
		stockAfter := make(map[string]int)

		err := db.Transaction(func(tx *gorm.DB) error {
			var subtotal float64
			var orderItems []models.OrderItem

			for _, item := range input.Items {
				productID := catalog.ToUUID(item.ProductID)

				// SQLite serializes writers on its own and rejects FOR
				// UPDATE; row locks only exist on Postgres.
				fetch := tx
				if tx.Dialector.Name() == "postgres" {
					fetch = tx.Clauses(clause.Locking{Strength: "UPDATE"})
				}

				var product models.Product
				if err := fetch.First(&product, "id = ?", productID).Error; err != nil {
					return err
				}

				if product.Stock < item.Quantity {
					return errInsufficientStock
				}

				product.Stock -= item.Quantity
				if err := tx.Save(&product).Error; err != nil {
					return err
				}
				stockAfter[product.ID] = product.Stock

				subtotal += product.Price * float64(item.Quantity)

				orderItems = append(orderItems, models.OrderItem{
					ProductID:       product.ID,
					ProductName:     product.Name,
					ProductImage:    product.Image,
					ProductColors:   product.Colors,
					SelectedColor:   item.SelectedColor,
					SelectedSize:    item.SelectedSize,
					PriceAtPurchase: product.Price,
					Quantity:        item.Quantity,
				})
			}

			totals := pricing.Compute(subtotal)
			order = models.Order{
				OrderRef:        generateOrderRef(),
				UserID:          userID,
				Items:           orderItems,
				Subtotal:        totals.Subtotal,
				Tax:             totals.Tax,
				Shipping:        totals.Shipping,
				Total:           totals.Total,
				Status:          models.OrderStatusConfirmed,
				ShippingAddress: input.ShippingAddress,
				CreatedAt:       time.Now(),
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			if errors.Is(err, errInsufficientStock) {
				c.JSON(http.StatusConflict, gin.H{"error": "Insufficient stock for one or more items"})
				return
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		if hub != nil {
			for id, stock := range stockAfter {
				hub.Broadcast(id, stock)
			}
		}

		c.JSON(http.StatusCreated, gin.H{"order": order})
	}
}

// GET /api/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		userID := userIDVal.(string)

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}
