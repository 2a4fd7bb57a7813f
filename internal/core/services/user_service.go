package services

import (
	"context"

	"github.com/primex-app/primex_backend/internal/core/domain"
	portsrepo "github.com/primex-app/primex_backend/internal/core/ports/repositories"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	assets   portssvc.ProfileAssetSvc
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, assets portssvc.ProfileAssetSvc) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, assets: assets}
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdateProfileImage stores the uploaded image and repoints the user row at
// it. The previous local asset is cleaned up best-effort; an external URL is
// left alone.
func (s *userService) UpdateProfileImage(ctx context.Context, userID int64, data []byte, contentType string) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	newRef, err := s.assets.Replace(ctx, user.ProfileURL, data, contentType)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.UpdateProfileURL(ctx, userID, newRef); err != nil {
		return "", err
	}
	return newRef, nil
}
