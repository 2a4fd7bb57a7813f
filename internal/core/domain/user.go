package domain

import "time"

// User represents an account holder in the domain.
type User struct {
	ID           int64   `json:"id"` // Primary key, database generated
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	ProfileURL   *string `json:"profileUrl,omitempty"`
	IsActive     bool    `json:"isActive"`

	// Password-reset token, embedded on the user row. Both fields are nil
	// unless a reset is in flight.
	ResetCode          *string    `json:"-"`
	ResetCodeExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}
