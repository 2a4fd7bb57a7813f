package services

import (
	"context"
	"time"
)

// TokenSvcFacade mints and verifies stateless session tokens.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed token carrying the user id,
	// expiring a fixed duration from now. Returns the token and its expiry.
	GenerateAccessToken(ctx context.Context, userID int64) (string, time.Time, error)

	// ValidateAccessToken checks signature and expiry and returns the user
	// id the token asserts. Returns apperrors.ErrUnauthorized when invalid.
	ValidateAccessToken(ctx context.Context, token string) (int64, error)
}
