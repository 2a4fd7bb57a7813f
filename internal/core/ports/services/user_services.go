package services

import (
	"context"

	"github.com/primex-app/primex_backend/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// UserProfileSvc defines profile asset operations on a user
type UserProfileSvc interface {
	// UpdateProfileImage stores the uploaded image, points the user row at
	// it, and best-effort deletes the previous local asset. Returns the new
	// asset reference.
	UpdateProfileImage(ctx context.Context, userID int64, data []byte, contentType string) (string, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserProfileSvc
}
