package models

import "time"

// RegistrationOTP is the database representation of a registration OTP row.
// email is the primary key, so there is at most one live code per address.
type RegistrationOTP struct {
	Email    string    `db:"email"`
	Code     string    `db:"code"`
	IssuedAt time.Time `db:"issued_at"`
}
