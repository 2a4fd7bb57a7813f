package services

import (
	"context"

	"github.com/primex-app/primex_backend/internal/core/domain"
)

// MailSender is the outbound email collaborator. Implementations must be safe
// for concurrent use.
type MailSender interface {
	SendVerificationEmail(ctx context.Context, to string, code string) error
	SendPasswordResetEmail(ctx context.Context, to string, code string) error
}

// BlobStore is the profile asset storage collaborator. References returned by
// Store are URL paths a client can fetch.
type BlobStore interface {
	// Store persists the bytes under the given filename and returns the
	// public reference.
	Store(ctx context.Context, filename string, data []byte) (string, error)

	// Delete removes a previously stored asset by its reference.
	Delete(ctx context.Context, ref string) error

	// IsLocal reports whether the reference points at this store rather
	// than an external URL.
	IsLocal(ref string) bool
}

// GoogleTokenVerifier validates a Google ID token against the configured
// client id and extracts the asserted identity.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*domain.GoogleIdentity, error)
}
