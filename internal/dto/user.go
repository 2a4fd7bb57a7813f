package dto

import (
	"github.com/primex-app/primex_backend/internal/core/domain"
)

// UserData is the public view of a user returned alongside a session token.
type UserData struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Picture  *string `json:"picture"`
}

// ToUserData converts a domain.User to its public view.
func ToUserData(user *domain.User) UserData {
	return UserData{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Username: user.Username,
		Picture:  user.ProfileURL,
	}
}

// UpdateProfileResponse is returned after a profile image replacement.
type UpdateProfileResponse struct {
	Message    string `json:"message"`
	ProfileURL string `json:"profileUrl"`
}
