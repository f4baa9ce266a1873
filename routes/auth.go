package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shopall-store/storefront-api/auth"
	emailControllers "github.com/shopall-store/storefront-api/controllers/email"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, mailer *emailControllers.Mailer) {
	// auth.Mailer is satisfied by *emailControllers.Mailer; a nil mailer
	// means resets are created but not delivered.
	var resetMailer auth.Mailer
	if mailer != nil {
		resetMailer = mailer
	}

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", auth.SignUp(db))
		authGroup.POST("/signin", auth.SignIn(db))
		authGroup.POST("/signout", auth.SignOut())
		authGroup.POST("/google", auth.GoogleLogin(db))
		authGroup.POST("/guest", auth.CreateGuestUser(db))
		authGroup.POST("/reset-password", auth.RequestPasswordReset(db, resetMailer))
		authGroup.POST("/reset-password/confirm", auth.ConfirmPasswordReset(db))
	}
}
