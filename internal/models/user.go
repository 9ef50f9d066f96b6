package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a signed-in identity. The remote store scopes every
// collection and document to User.ID; anonymous sessions have no User at all
// and live entirely in local storage.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the user's email address (unique, used for login).
	Email string `json:"email"`

	// DisplayName is the profile name shown in greetings.
	DisplayName string `json:"displayName,omitempty"`

	// PhotoURL is an optional avatar reference.
	PhotoURL string `json:"photoURL,omitempty"`

	// PasswordHash is the bcrypt hash of the login password.
	// Never serialized outward; only the auth store reads it.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}

// NewUser creates a user with a fresh id and creation timestamp.
func NewUser(email, displayName, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
