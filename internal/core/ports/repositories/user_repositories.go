package repositories

import (
	"context"
	"time"

	"github.com/primex-app/primex_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByEmail retrieves a specific user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByUsername retrieves a specific user by their username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user row and returns the generated id.
	SaveUser(ctx context.Context, user domain.User) (int64, error)

	// CreateVerifiedUser inserts a new user and deletes the consumed
	// registration OTP for the same email within one transaction.
	// Returns apperrors.ErrDuplicate when username or email is taken.
	CreateVerifiedUser(ctx context.Context, user domain.User) (int64, error)

	// SetActive flips the activity flag for a user.
	SetActive(ctx context.Context, userID int64, active bool) error

	// UpdateProfileURL replaces the stored profile asset reference.
	UpdateProfileURL(ctx context.Context, userID int64, profileURL string) error

	// SetResetCode stores a password-reset code and its expiry on the user row.
	SetResetCode(ctx context.Context, email string, code string, expiresAt time.Time) error

	// ReplacePassword swaps in a new password hash and clears the reset
	// code and expiry fields.
	ReplacePassword(ctx context.Context, email string, passwordHash string) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser removes the user row transactionally and returns the
	// profile asset reference it held, for cleanup by the caller.
	// Returns apperrors.ErrNotFound when no row was deleted.
	DeleteUser(ctx context.Context, userID int64) (*string, error)
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserLifecycleManager
}
