package services

import (
	"context"
	"strconv"
	"time"

	"github.com/primex-app/primex_backend/internal/apperrors"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/platform/config"
	"github.com/primex-app/primex_backend/internal/utils"
)

// tokenService mints stateless HS256 session tokens. There is no revocation
// list; logout does not invalidate outstanding tokens.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, userID int64) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(strconv.FormatInt(userID, 10), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}

// ValidateAccessToken checks signature and expiry and returns the asserted
// user id.
func (s *tokenService) ValidateAccessToken(ctx context.Context, token string) (int64, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.cfg.JWTSecret)
	if err != nil {
		return 0, apperrors.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return userID, nil
}
