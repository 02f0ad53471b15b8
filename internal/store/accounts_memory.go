package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"office-hours-server/internal/models"
)

type MemoryAccounts struct {
	mu     sync.RWMutex
	users  map[string]models.User
	tokens map[string]models.RefreshToken
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{
		users:  make(map[string]models.User),
		tokens: make(map[string]models.RefreshToken),
	}
}

func (a *MemoryAccounts) CreateUser(_ context.Context, u *models.User) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.users {
		if existing.Role == u.Role && strings.EqualFold(existing.Email, u.Email) {
			return ErrUserExists
		}
	}
	stamp(&u.BaseModel, time.Now())
	a.users[u.ID] = *u
	return nil
}

func (a *MemoryAccounts) UserByEmail(_ context.Context, email string, role models.Role) (*models.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, u := range a.users {
		if u.Role == role && strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (a *MemoryAccounts) UserByID(_ context.Context, id string) (*models.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	u, ok := a.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (a *MemoryAccounts) ListUsers(_ context.Context, role models.Role) ([]models.User, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	users := []models.User{}
	for _, u := range a.users {
		if role == "" || u.Role == role {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (a *MemoryAccounts) SaveRefreshToken(_ context.Context, t *models.RefreshToken) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stamp(&t.BaseModel, time.Now())
	a.tokens[t.ID] = *t
	return nil
}

func (a *MemoryAccounts) UsableRefreshToken(_ context.Context, token, userID string, now time.Time) (*models.RefreshToken, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, t := range a.tokens {
		if t.Token == token && t.UserID == userID && t.Usable(now) {
			return &t, nil
		}
	}
	return nil, ErrTokenNotFound
}

func (a *MemoryAccounts) RotateRefreshToken(_ context.Context, old, next *models.RefreshToken) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	current, ok := a.tokens[old.ID]
	if !ok || current.IsRevoked {
		return ErrTokenNotFound
	}
	current.IsRevoked = true
	a.tokens[old.ID] = current
	old.IsRevoked = true

	stamp(&next.BaseModel, time.Now())
	a.tokens[next.ID] = *next
	return nil
}

func (a *MemoryAccounts) RevokeRefreshToken(_ context.Context, token string, now time.Time) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, t := range a.tokens {
		if t.Token == token && !t.IsRevoked {
			t.IsRevoked = true
			t.ExpiresAt = now
			a.tokens[id] = t
			return true, nil
		}
	}
	return false, nil
}

func (a *MemoryAccounts) PurgeRefreshTokens(_ context.Context, now time.Time) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var n int64
	for id, t := range a.tokens {
		if !t.Usable(now) {
			delete(a.tokens, id)
			n++
		}
	}
	return n, nil
}
