package models

import "time"

// Profile is the account row behind a session. PasswordHash is empty for
// OAuth-only accounts.
type Profile struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName       string    `json:"full_name"`
	Picture        string    `json:"picture,omitempty"`
	Provider       string    `json:"provider"` // "password" or "google"
	PasswordHash   string    `json:"-"`
	ResetToken     string    `gorm:"index" json:"-"`
	ResetExpiresAt time.Time `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GuestUser backs short-lived guest sessions; their cart lines are merged
// into the account cart on login.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
