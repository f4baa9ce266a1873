package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	firebase "firebase.google.com/go"
	firebaseauth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/shopall-store/storefront-api/models"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

var (
	firebaseOnce sync.Once
	firebaseAuth *firebaseauth.Client
	firebaseErr  error
	projectID    string
)

func firebaseClient() (*firebaseauth.Client, error) {
	firebaseOnce.Do(func() {
		credsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		projectID = os.Getenv("FIREBASE_PROJECT_ID")
		if credsJSON == "" || projectID == "" {
			firebaseErr = errors.New("FIREBASE_CREDENTIALS_JSON and FIREBASE_PROJECT_ID must be set")
			return
		}

		ctx := context.Background()
		opt := option.WithCredentialsJSON([]byte(credsJSON))
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opt)
		if err != nil {
			firebaseErr = err
			return
		}
		firebaseAuth, firebaseErr = app.Auth(ctx)
	})
	return firebaseAuth, firebaseErr
}

type googleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
	GuestID string `json:"guest_id"`
}

// POST /auth/google
func GoogleLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input googleLoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		client, err := firebaseClient()
		if err != nil {
			log.Printf("❌ Firebase not configured: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Google sign-in unavailable"})
			return
		}

		token, err := client.VerifyIDTokenAndCheckRevoked(c.Request.Context(), input.IDToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google ID token"})
			return
		}
		if token.Audience != projectID {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token audience"})
			return
		}

		email, _ := token.Claims["email"].(string)
		name, _ := token.Claims["name"].(string)
		picture, _ := token.Claims["picture"].(string)

		var profile models.Profile
		err = db.Where("id = ?", token.UID).First(&profile).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			profile = models.Profile{
				ID:        token.UID,
				Email:     email,
				FullName:  name,
				Picture:   picture,
				Provider:  "google",
				CreatedAt: time.Now(),
			}
			if err := db.Create(&profile).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
		case err == nil:
			db.Model(&profile).Updates(models.Profile{FullName: name, Picture: picture})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		mergeStatus := "no-guest-cart"
		if input.GuestID != "" {
			merged, err := mergeGuestCart(db, input.GuestID, profile.ID)
			switch {
			case err != nil:
				mergeStatus = "merge-failed"
			case merged:
				mergeStatus = "merged-success"
			default:
				mergeStatus = "guest-cart-empty"
			}
		}

		jwtToken, err := issueJWT(profile.ID, profile.Email, "user", profile.FullName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"merge_status": mergeStatus,
			"user":         profile,
			"token":        jwtToken,
		})
	}
}

// mergeGuestCart folds the guest's cart lines into the account cart. Matching
// lines (same product, color, size) sum quantities; the rest move over. The
// guest rows are removed in the same transaction.
func mergeGuestCart(db *gorm.DB, guestID, userID string) (bool, error) {
	var guestItems []models.CartItem
	if err := db.Where("user_id = ?", guestID).Find(&guestItems).Error; err != nil {
		return false, err
	}
	if len(guestItems) == 0 {
		return false, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, gi := range guestItems {
			var existing models.CartItem
			err := tx.Where(
				"user_id = ? AND product_id = ? AND selected_color = ? AND selected_size = ?",
				userID, gi.ProductID, gi.SelectedColor, gi.SelectedSize,
			).First(&existing).Error

			switch {
			case err == nil:
				existing.Quantity += gi.Quantity
				existing.AddedAt = time.Now()
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				moved := models.CartItem{
					UserID:        userID,
					ProductID:     gi.ProductID,
					SelectedColor: gi.SelectedColor,
					SelectedSize:  gi.SelectedSize,
					Quantity:      gi.Quantity,
					AddedAt:       time.Now(),
				}
				if err := tx.Create(&moved).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return tx.Where("user_id = ?", guestID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
