package dto

import "time"

// RegisterUserRequest registers a user by identity-provider subject. When the
// request also carries a valid bearer token, the token's subject and email win.
// @Description User registration payload
type RegisterUserRequest struct {
	ExternalID  string `json:"external_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	// Verified is set by the handler when the identity came from a valid token.
	Verified bool `json:"-"`
}

// UserResponse defines the structure for a user's profile information.
type UserResponse struct {
	ID          string    `json:"id"`
	ExternalID  string    `json:"external_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	CategoryIDs []string  `json:"category_ids"`
	QuizIDs     []string  `json:"quiz_ids"`
}
