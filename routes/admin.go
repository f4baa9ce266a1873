package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/shopall-store/storefront-api/controllers/order"
	"github.com/shopall-store/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the API-key-protected "/admin/*" endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		adminGroup.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
	}
}
