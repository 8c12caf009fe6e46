package domain

import "time"

// User models a human account that signs in with email and password. Service
// integrations authenticate with API keys instead; both paths resolve to the
// same principal.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
