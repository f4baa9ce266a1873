package routes

import (
	"github.com/gin-gonic/gin"
	emailControllers "github.com/shopall-store/storefront-api/controllers/email"
	productcontroller "github.com/shopall-store/storefront-api/controllers/product"
	stockcontrollers "github.com/shopall-store/storefront-api/controllers/stock"
	wishlistControllers "github.com/shopall-store/storefront-api/controllers/wishlist"
	"gorm.io/gorm"
)

// SetupPublicRoutes registers the endpoints that require no session: product
// browsing, the shared-wishlist view (the token is the capability), the
// realtime stock channel and the order-confirmation email.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB, hub *stockcontrollers.Hub, mailer *emailControllers.Mailer) {
	api := r.Group("/api")
	{
		api.GET("/products", productcontroller.GetProducts(db))
		api.GET("/products/:id", productcontroller.GetProductByID(db))
		api.GET("/products/:id/reviews", productcontroller.GetProductReviews(db))

		api.GET("/wishlist/share/:token", wishlistControllers.GetSharedWishlist(db))

		api.GET("/stock", stockcontrollers.GetStock(db))
		api.GET("/stock/ws", stockcontrollers.StockWebSocketHandler(hub))

		api.POST("/send-order-email", emailControllers.SendOrderEmail(mailer))
	}
}
