package services

import (
	"log/slog"

	portsrepo "github.com/primex-app/primex_backend/internal/core/ports/repositories"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	mailer portssvc.MailSender,
	store portssvc.BlobStore,
	logger *slog.Logger,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg)
	container.GoogleVerifier = NewGoogleTokenVerifier(cfg)
	container.RegistrationOTP = NewRegistrationOTPService(repos.OTPRepo, mailer, cfg.OTPExpiryDuration)
	container.ProfileAsset = NewProfileAssetService(store, logger)
	container.User = NewUserService(repos.UserRepo, container.ProfileAsset)
	container.Auth = NewAuthService(
		repos.UserRepo,
		container.RegistrationOTP,
		container.Token,
		container.GoogleVerifier,
		container.ProfileAsset,
		mailer,
		cfg.OTPExpiryDuration,
		logger,
	)

	return container
}
