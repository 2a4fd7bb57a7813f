package services

import "context"

// RegistrationOTPSvc issues and validates registration verification codes.
type RegistrationOTPSvc interface {
	// IssueRegistrationOTP generates a 6-digit code, emails it, and upserts
	// it keyed by email. The code never travels in an HTTP response.
	IssueRegistrationOTP(ctx context.Context, email string) error

	// VerifyRegistrationOTP checks the submitted code against the stored
	// one. Returns apperrors.ErrNotFound when no request is pending and
	// apperrors.ErrInvalidOTP on mismatch or an expired validity window.
	// The stored row is not consumed here; deletion happens inside the
	// registration transaction.
	VerifyRegistrationOTP(ctx context.Context, email string, code string) error
}
