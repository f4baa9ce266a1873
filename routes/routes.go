package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shopall-store/storefront-api/config"
	emailControllers "github.com/shopall-store/storefront-api/controllers/email"
	stockcontrollers "github.com/shopall-store/storefront-api/controllers/stock"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires up the public, auth,
// session-protected and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *stockcontrollers.Hub, mailer *emailControllers.Mailer) {
	SetupAuthRoutes(r, db, mailer)

	SetupPublicRoutes(r, db, hub, mailer)

	SetupAPIRoutes(r, db, cfg, hub)

	SetupAdminRoutes(r, db)
}
