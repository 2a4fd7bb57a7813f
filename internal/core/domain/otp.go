package domain

import "time"

// RegistrationOTP is the single live verification code for an email address
// that has not completed registration yet. Re-issuing overwrites it.
type RegistrationOTP struct {
	Email    string    `json:"email"`
	Code     string    `json:"-"`
	IssuedAt time.Time `json:"issuedAt"`
}
