package models

import (
	"time"
)

// User is the database representation of a user row.
type User struct {
	ID                 int64      `db:"id"`
	Name               string     `db:"name"`
	Email              string     `db:"email"`
	Username           string     `db:"username"`
	PasswordHash       string     `db:"password_hash"`
	ProfileURL         *string    `db:"profile_url"`
	IsActive           bool       `db:"is_active"`
	ResetCode          *string    `db:"reset_code"`
	ResetCodeExpiresAt *time.Time `db:"reset_code_expires_at"`
	CreatedAt          time.Time  `db:"created_at"`
}
