package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shopall-store/storefront-api/config"
	cartControllers "github.com/shopall-store/storefront-api/controllers/cart"
	orderControllers "github.com/shopall-store/storefront-api/controllers/order"
	productcontroller "github.com/shopall-store/storefront-api/controllers/product"
	stockcontrollers "github.com/shopall-store/storefront-api/controllers/stock"
	userControllers "github.com/shopall-store/storefront-api/controllers/user"
	wishlistControllers "github.com/shopall-store/storefront-api/controllers/wishlist"
	"github.com/shopall-store/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAPIRoutes registers the session-protected "/api/*" endpoints.
func SetupAPIRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *stockcontrollers.Hub) {
	api := r.Group("/api")
	api.Use(middleware.ValidateToken)
	{
		api.GET("/profile", userControllers.GetProfile(db))
		api.PUT("/profile", userControllers.UpdateProfile(db))

		api.GET("/cart", cartControllers.GetCart(db))
		api.POST("/cart", cartControllers.UpsertCartItem(db))
		api.DELETE("/cart", cartControllers.DeleteCartItem(db))

		api.GET("/orders", orderControllers.GetUserOrders(db))
		api.POST("/orders", orderControllers.PlaceOrder(db, hub))

		api.GET("/wishlist", wishlistControllers.GetWishlist(db))
		api.POST("/wishlist", wishlistControllers.AddWishlistItem(db))
		api.DELETE("/wishlist", wishlistControllers.RemoveWishlistItem(db))
		api.PATCH("/wishlist", wishlistControllers.UpdateWishlistSettings(db))
		api.POST("/wishlist/share", wishlistControllers.CreateShareLink(db, cfg.BaseURL))

		api.POST("/products/:id/reviews", productcontroller.CreateProductReview(db))
	}
}
