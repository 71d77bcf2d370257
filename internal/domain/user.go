package domain

import (
	"strings"
	"time"
)

// User is keyed by the identity provider's subject (ExternalID). Owned
// category and quiz IDs are derived from the entities' user_id, not stored.
type User struct {
	ID          string
	ExternalID  string
	Email       string
	DisplayName string
	CreatedAt   time.Time
	CategoryIDs []string
	QuizIDs     []string
}

// NewUser creates a new User, falling back to the email local part when no
// display name is given.
func NewUser(externalID, email, displayName string) *User {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}
	return &User{
		ExternalID:  externalID,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
	}
}

// Validate validates the user
func (u *User) Validate() error {
	if u.ExternalID == "" {
		return NewInvalidInputError("identity ID is required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return NewInvalidInputError("a valid email is required")
	}
	return nil
}

// Identity is what the token verifier vouches for.
type Identity struct {
	UserID string
	Email  string
}
