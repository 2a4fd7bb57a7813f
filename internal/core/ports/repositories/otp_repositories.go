package repositories

import (
	"context"

	"github.com/primex-app/primex_backend/internal/core/domain"
)

// RegistrationOTPRepository persists the single live OTP per email address.
// Consumption is not part of this interface: the OTP row is deleted inside
// the registration transaction by UserWriter.CreateVerifiedUser, so that
// deletion stays atomic with user creation.
type RegistrationOTPRepository interface {
	// UpsertRegistrationOTP inserts the code for the email, overwriting any
	// previous code and refreshing the issue time.
	UpsertRegistrationOTP(ctx context.Context, email string, code string) error

	// FindRegistrationOTP retrieves the live OTP for an email.
	// Returns apperrors.ErrNotFound when no request is pending.
	FindRegistrationOTP(ctx context.Context, email string) (*domain.RegistrationOTP, error)
}
