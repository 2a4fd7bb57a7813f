package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/primex-app/primex_backend/internal/apperrors"
	"github.com/primex-app/primex_backend/internal/core/domain"
	portsrepo "github.com/primex-app/primex_backend/internal/core/ports/repositories"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/dto"
	"github.com/primex-app/primex_backend/internal/utils"
)

// authService orchestrates the account lifecycle. All state lives in the
// credential store; the service itself is safe for concurrent use.
type authService struct {
	userRepo       portsrepo.UserRepositoryFacade
	otpSvc         portssvc.RegistrationOTPSvc
	tokenSvc       portssvc.TokenSvcFacade
	googleVerifier portssvc.GoogleTokenVerifier
	assets         portssvc.ProfileAssetSvc
	mailer         portssvc.MailSender
	otpValidity    time.Duration
	logger         *slog.Logger

	now func() time.Time // injectable for expiry-boundary tests
}

// NewAuthService creates a new instance of authService.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	otpSvc portssvc.RegistrationOTPSvc,
	tokenSvc portssvc.TokenSvcFacade,
	googleVerifier portssvc.GoogleTokenVerifier,
	assets portssvc.ProfileAssetSvc,
	mailer portssvc.MailSender,
	otpValidity time.Duration,
	logger *slog.Logger,
) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:       userRepo,
		otpSvc:         otpSvc,
		tokenSvc:       tokenSvc,
		googleVerifier: googleVerifier,
		assets:         assets,
		mailer:         mailer,
		otpValidity:    otpValidity,
		logger:         logger,
		now:            time.Now,
	}
}

// SendRegistrationOTP issues a code unless the email is already taken. This
// endpoint intentionally reveals registration state; the forgot-password flow
// does not.
func (s *authService) SendRegistrationOTP(ctx context.Context, email string) error {
	_, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return apperrors.ErrDuplicate
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	return s.otpSvc.IssueRegistrationOTP(ctx, email)
}

// Register validates the OTP and creates the user. User insert and OTP
// consumption commit together; any failure rolls both back.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) error {
	if err := s.otpSvc.VerifyRegistrationOTP(ctx, req.Email, req.OTP); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No OTP was ever requested for this email.
			return apperrors.ErrValidation
		}
		return err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.userRepo.CreateVerifiedUser(ctx, domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	})
	return err
}

// Login authenticates by username when no email was supplied, else by email.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	var user *domain.User
	var err error
	if req.Username != "" && req.Email == "" {
		user, err = s.userRepo.FindUserByUsername(ctx, req.Username)
	} else {
		user, err = s.userRepo.FindUserByEmail(ctx, req.Email)
	}
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.SetActive(ctx, user.ID, true); err != nil {
		return nil, "", err
	}
	user.IsActive = true

	token, _, err := s.tokenSvc.GenerateAccessToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return user, token, nil
}

// GoogleLogin upserts a user from a verified Google identity. Repeated logins
// for the same identity converge on one row.
func (s *authService) GoogleLogin(ctx context.Context, idToken string) (*domain.User, string, error) {
	identity, err := s.googleVerifier.Verify(ctx, idToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		user, err = s.registerGoogleUser(ctx, identity)
		if err != nil {
			return nil, "", err
		}
	case err != nil:
		return nil, "", err
	default:
		if err := s.reactivateGoogleUser(ctx, user, identity); err != nil {
			return nil, "", err
		}
		// Re-read so the response reflects any avatar replacement.
		user, err = s.userRepo.FindUserByID(ctx, user.ID)
		if err != nil {
			return nil, "", err
		}
	}

	token, _, err := s.tokenSvc.GenerateAccessToken(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return user, token, nil
}

func (s *authService) registerGoogleUser(ctx context.Context, identity *domain.GoogleIdentity) (*domain.User, error) {
	localRef := s.assets.IngestFromURL(ctx, identity.PictureURL)

	// The provider subject doubles as a pseudo-password; it is never usable
	// for a credential login since callers only know the hash source.
	hash, err := utils.HashPassword(identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to hash provider subject: %w", err)
	}

	username, _, _ := strings.Cut(identity.Email, "@")
	user := domain.User{
		Name:         identity.Name,
		Email:        identity.Email,
		Username:     username,
		PasswordHash: hash,
		ProfileURL:   &localRef,
		IsActive:     true,
	}

	id, err := s.userRepo.SaveUser(ctx, user)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Lost a race with a concurrent first login for the same identity.
		existing, ferr := s.userRepo.FindUserByEmail(ctx, identity.Email)
		if ferr != nil {
			return nil, ferr
		}
		if aerr := s.userRepo.SetActive(ctx, existing.ID, true); aerr != nil {
			return nil, aerr
		}
		existing.IsActive = true
		return existing, nil
	}
	if err != nil {
		return nil, err
	}
	user.ID = id
	return &user, nil
}

func (s *authService) reactivateGoogleUser(ctx context.Context, user *domain.User, identity *domain.GoogleIdentity) error {
	if err := s.userRepo.SetActive(ctx, user.ID, true); err != nil {
		return err
	}

	// Re-ingest the avatar when the stored reference is missing or still
	// points at the provider; a failed earlier ingestion self-heals here.
	var sourceURL string
	switch {
	case user.ProfileURL == nil || *user.ProfileURL == "":
		sourceURL = identity.PictureURL
	case strings.HasPrefix(*user.ProfileURL, "http"):
		sourceURL = *user.ProfileURL
	default:
		return nil // already locally managed
	}
	if sourceURL == "" {
		return nil
	}

	localRef := s.assets.IngestFromURL(ctx, sourceURL)
	return s.userRepo.UpdateProfileURL(ctx, user.ID, localRef)
}

// Logout clears the activity flag. A missing user is not an error; the flag
// is already as logged-out as it gets.
func (s *authService) Logout(ctx context.Context, userID int64) error {
	err := s.userRepo.SetActive(ctx, userID, false)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return nil
}

// SendForgotPasswordOTP behaves identically from the caller's point of view
// whether or not the email is registered.
func (s *authService) SendForgotPasswordOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate reset otp: %w", err)
	}
	expiresAt := s.now().Add(s.otpValidity)

	if err := s.userRepo.SetResetCode(ctx, user.Email, code, expiresAt); err != nil {
		return err
	}
	return s.mailer.SendPasswordResetEmail(ctx, user.Email, code)
}

// VerifyForgotPasswordOTP is a pure check so a client can confirm the code
// before showing a reset form.
func (s *authService) VerifyForgotPasswordOTP(ctx context.Context, email string, otp string) error {
	return s.checkResetCode(ctx, email, otp)
}

// ResetPassword re-validates the code before replacing the hash, guarding
// against a reset that happened between verify and submit.
func (s *authService) ResetPassword(ctx context.Context, email string, otp string, newPassword string) error {
	if err := s.checkResetCode(ctx, email, otp); err != nil {
		return err
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	return s.userRepo.ReplacePassword(ctx, email, hash)
}

func (s *authService) checkResetCode(ctx context.Context, email string, otp string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.ErrInvalidOrExpiredOTP
	}
	if err != nil {
		return err
	}

	if user.ResetCode == nil || user.ResetCodeExpiresAt == nil {
		return apperrors.ErrInvalidOrExpiredOTP
	}
	if *user.ResetCode != otp || !s.now().Before(*user.ResetCodeExpiresAt) {
		return apperrors.ErrInvalidOrExpiredOTP
	}
	return nil
}

// DeleteAccount removes the user row, then best-effort deletes the profile
// asset. Asset deletion failure never surfaces: the account is already gone.
func (s *authService) DeleteAccount(ctx context.Context, userID int64) error {
	profileURL, err := s.userRepo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}

	if profileURL != nil {
		s.assets.DeleteIfLocal(ctx, *profileURL)
	}
	s.logger.Info("Account deleted", slog.Int64("user_id", userID))
	return nil
}
