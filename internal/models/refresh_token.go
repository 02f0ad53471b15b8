package models

import (
	"time"
)

// RefreshToken is a long-lived token that can be exchanged for a new access token.
// Rotation revokes the presented token and issues a new one.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"size:512;not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"index" json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`
}

// Usable reports whether the token can still be exchanged at now.
func (t *RefreshToken) Usable(now time.Time) bool {
	return !t.IsRevoked && now.Before(t.ExpiresAt)
}
