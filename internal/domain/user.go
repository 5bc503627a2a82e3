package domain

import (
	"strings"
	"time"
)

// User is an account identified by email, authenticated by password.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new User instance
func NewUser(id, name, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           id,
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.ID == "" {
		return NewValidationError("id", "id is required")
	}
	if u.Email == "" {
		return NewValidationError("email", "email is required")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password", "password is required")
	}
	return nil
}
