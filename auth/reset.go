package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopall-store/storefront-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mailer delivers the reset token to the account email.
type Mailer interface {
	SendPasswordReset(to, token string) error
}

type resetRequestInput struct {
	Email string `json:"email" binding:"required,email"`
}

type resetConfirmInput struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// POST /auth/reset-password
//
// Always answers 200 so the endpoint cannot be used to probe which emails
// have accounts.
func RequestPasswordReset(db *gorm.DB, mailer Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input resetRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var profile models.Profile
		err := db.Where("email = ?", input.Email).First(&profile).Error
		if err == nil {
			token := uuid.NewString()
			updates := map[string]interface{}{
				"reset_token":      token,
				"reset_expires_at": time.Now().Add(time.Hour),
			}
			if err := db.Model(&profile).Updates(updates).Error; err == nil {
				if mailer != nil {
					if err := mailer.SendPasswordReset(profile.Email, token); err != nil {
						// Token stays valid; the user can retry the request.
						c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset email"})
						return
					}
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "If that email has an account, a reset link has been sent"})
	}
}

// POST /auth/reset-password/confirm
func ConfirmPasswordReset(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input resetConfirmInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var profile models.Profile
		if err := db.Where("reset_token = ?", input.Token).First(&profile).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
			return
		}
		if time.Now().After(profile.ResetExpiresAt) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			return
		}

		updates := map[string]interface{}{
			"password_hash":    string(hash),
			"reset_token":      "",
			"reset_expires_at": time.Time{},
		}
		if err := db.Model(&profile).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
	}
}
