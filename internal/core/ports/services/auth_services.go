package services

import (
	"context"

	"github.com/primex-app/primex_backend/internal/core/domain"
	"github.com/primex-app/primex_backend/internal/dto"
)

// AuthSvcFacade orchestrates the account lifecycle: OTP-gated registration,
// credential and Google sign-in, logout, password reset and deletion.
type AuthSvcFacade interface {
	// SendRegistrationOTP issues and emails a registration OTP.
	// Returns apperrors.ErrDuplicate when the email is already registered.
	SendRegistrationOTP(ctx context.Context, email string) error

	// Register validates the submitted OTP and creates the user
	// transactionally, consuming the OTP. Returns apperrors.ErrValidation
	// when no OTP request exists, apperrors.ErrInvalidOTP on mismatch or
	// expiry, apperrors.ErrDuplicate on username/email conflict.
	Register(ctx context.Context, req dto.RegisterRequest) error

	// Login verifies credentials, marks the user active and issues a
	// session token. Returns apperrors.ErrNotFound when no user matches,
	// apperrors.ErrInvalidCredentials on password mismatch.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error)

	// GoogleLogin verifies the ID token, creates or reactivates the user,
	// and issues a session token. Idempotent per Google identity.
	GoogleLogin(ctx context.Context, idToken string) (*domain.User, string, error)

	// Logout clears the activity flag. Outstanding session tokens stay
	// valid until natural expiry.
	Logout(ctx context.Context, userID int64) error

	// SendForgotPasswordOTP stores and emails a reset code when the email
	// is registered; it never reveals whether that was the case.
	SendForgotPasswordOTP(ctx context.Context, email string) error

	// VerifyForgotPasswordOTP checks a reset code without mutating state.
	// Returns apperrors.ErrInvalidOrExpiredOTP unless code and window match.
	VerifyForgotPasswordOTP(ctx context.Context, email string, otp string) error

	// ResetPassword re-validates the code and replaces the password hash,
	// clearing the reset fields.
	ResetPassword(ctx context.Context, email string, otp string, newPassword string) error

	// DeleteAccount removes the user row transactionally, then best-effort
	// deletes the profile asset. Returns apperrors.ErrNotFound when the
	// user does not exist.
	DeleteAccount(ctx context.Context, userID int64) error
}
