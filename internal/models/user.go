package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleProfessor
}

// User is an account of either role. The same email may be registered once per role.
type User struct {
	BaseModel
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:255;not null;uniqueIndex:idx_users_email_role,priority:1" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	Role     Role   `gorm:"size:20;not null;uniqueIndex:idx_users_email_role,priority:2" json:"role"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize strips the password hash.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
