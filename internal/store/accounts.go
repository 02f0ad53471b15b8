package store

import (
	"context"
	"errors"
	"time"

	"office-hours-server/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user with this email already exists")
	ErrTokenNotFound = errors.New("refresh token not found, expired, or revoked")
)

// Accounts persists users and their refresh tokens.
type Accounts interface {
	// CreateUser returns ErrUserExists when the email is taken for that role.
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string, role models.Role) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, role models.Role) ([]models.User, error)

	SaveRefreshToken(ctx context.Context, t *models.RefreshToken) error
	// UsableRefreshToken returns ErrTokenNotFound unless token belongs to
	// userID and is neither revoked nor expired at now.
	UsableRefreshToken(ctx context.Context, token, userID string, now time.Time) (*models.RefreshToken, error)
	// RotateRefreshToken revokes old and stores next in one step.
	RotateRefreshToken(ctx context.Context, old, next *models.RefreshToken) error
	// RevokeRefreshToken reports whether a live token was revoked.
	RevokeRefreshToken(ctx context.Context, token string, now time.Time) (bool, error)
	// PurgeRefreshTokens deletes revoked and expired tokens.
	PurgeRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}
