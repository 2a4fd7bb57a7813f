package services

import (
	"context"
	"fmt"
	"time"

	"github.com/primex-app/primex_backend/internal/apperrors"
	portsrepo "github.com/primex-app/primex_backend/internal/core/ports/repositories"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/utils"
)

// registrationOTPService issues and validates registration codes. One live
// code per email; re-issuing overwrites.
type registrationOTPService struct {
	otpRepo  portsrepo.RegistrationOTPRepository
	mailer   portssvc.MailSender
	validity time.Duration
}

// NewRegistrationOTPService creates a new registration OTP service. validity
// is the window within which an issued code is accepted.
func NewRegistrationOTPService(otpRepo portsrepo.RegistrationOTPRepository, mailer portssvc.MailSender, validity time.Duration) portssvc.RegistrationOTPSvc {
	return &registrationOTPService{
		otpRepo:  otpRepo,
		mailer:   mailer,
		validity: validity,
	}
}

func (s *registrationOTPService) IssueRegistrationOTP(ctx context.Context, email string) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate registration otp: %w", err)
	}

	if err := s.mailer.SendVerificationEmail(ctx, email, code); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	if err := s.otpRepo.UpsertRegistrationOTP(ctx, email, code); err != nil {
		return err
	}
	return nil
}

func (s *registrationOTPService) VerifyRegistrationOTP(ctx context.Context, email string, code string) error {
	stored, err := s.otpRepo.FindRegistrationOTP(ctx, email)
	if err != nil {
		return err // apperrors.ErrNotFound when nothing is pending
	}
	if s.validity > 0 && time.Since(stored.IssuedAt) > s.validity {
		return apperrors.ErrInvalidOTP
	}
	if stored.Code != code {
		return apperrors.ErrInvalidOTP
	}
	return nil
}
