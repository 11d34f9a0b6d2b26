package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an in-memory account. PasswordHash is never serialized to API
// responses — it is only ever touched by internal/auth.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates a User with a freshly assigned id.
func NewUser(email, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
