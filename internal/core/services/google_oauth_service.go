package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/primex-app/primex_backend/internal/core/domain"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/platform/config"
	"google.golang.org/api/idtoken"
)

// googleTokenVerifier validates Google ID tokens against the configured
// client id. Signature and audience checks are delegated to the idtoken
// library; this service only extracts the asserted identity.
type googleTokenVerifier struct {
	clientID string
}

// NewGoogleTokenVerifier creates a new instance of googleTokenVerifier.
func NewGoogleTokenVerifier(cfg *config.Config) portssvc.GoogleTokenVerifier {
	return &googleTokenVerifier{clientID: cfg.GoogleClientID}
}

func (s *googleTokenVerifier) Verify(ctx context.Context, idTokenString string) (*domain.GoogleIdentity, error) {
	if s.clientID == "" {
		// This should ideally be caught at startup, but as a safeguard:
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	if email == "" || payload.Subject == "" {
		return nil, errors.New("essential claims (email or sub) missing from google ID token")
	}

	return &domain.GoogleIdentity{
		Email:      email,
		Name:       name,
		Subject:    payload.Subject,
		PictureURL: picture,
	}, nil
}
