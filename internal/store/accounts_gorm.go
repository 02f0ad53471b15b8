package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"office-hours-server/internal/models"
)

type GormAccounts struct {
	db *gorm.DB
}

func NewGormAccounts(db *gorm.DB) *GormAccounts {
	return &GormAccounts{db: db}
}

func (a *GormAccounts) CreateUser(ctx context.Context, u *models.User) error {
	_, err := a.UserByEmail(ctx, u.Email, u.Role)
	switch {
	case err == nil:
		return ErrUserExists
	case !errors.Is(err, ErrUserNotFound):
		return err
	}

	if err := a.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (a *GormAccounts) UserByEmail(ctx context.Context, email string, role models.Role) (*models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).Where("email = ? AND role = ?", email, role).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *GormAccounts) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := a.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *GormAccounts) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	users := []models.User{}
	query := a.db.WithContext(ctx)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (a *GormAccounts) SaveRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return a.db.WithContext(ctx).Create(t).Error
}

func (a *GormAccounts) UsableRefreshToken(ctx context.Context, token, userID string, now time.Time) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	err := a.db.WithContext(ctx).
		Where("token = ? AND user_id = ? AND is_revoked = ? AND expires_at > ?", token, userID, false, now).
		First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (a *GormAccounts) RotateRefreshToken(ctx context.Context, old, next *models.RefreshToken) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND is_revoked = ?", old.ID, false).
			Update("is_revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenNotFound
		}
		old.IsRevoked = true
		return tx.Create(next).Error
	})
}

func (a *GormAccounts) RevokeRefreshToken(ctx context.Context, token string, now time.Time) (bool, error) {
	res := a.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", token, false).
		Updates(map[string]any{"is_revoked": true, "expires_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (a *GormAccounts) PurgeRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res := a.db.WithContext(ctx).
		Where("is_revoked = ? OR expires_at <= ?", true, now).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
