package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/primex-app/primex_backend/internal/apperrors"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/dto"
	"github.com/primex-app/primex_backend/internal/middleware"
)

// UserHandler handles user profile requests.
type UserHandler struct {
	userService portssvc.UserSvcFacade
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us portssvc.UserSvcFacade) *UserHandler {
	return &UserHandler{userService: us}
}

func RegisterUserRoutes(rg *gin.RouterGroup, jwtSecret string, services *portssvc.ServiceContainer) {
	h := NewUserHandler(services.User)

	users := rg.Group("/user", middleware.AuthMiddleware(jwtSecret))
	{
		users.PATCH("/updateprofile/:userId", h.UpdateProfile)
	}
}

// UpdateProfile godoc
// @Summary Replace the profile image
// @Description Stores the uploaded image, updates the profile URL, and removes the previously stored image.
// @Tags user
// @Accept multipart/form-data
// @Produce json
// @Param userId path int true "User ID"
// @Param profileImage formData file true "Profile image"
// @Success 200 {object} dto.UpdateProfileResponse
// @Failure 400 {object} dto.MessageResponse "No profile image file uploaded"
// @Failure 404 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /user/updateprofile/{userId} [patch]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid user id"})
		return
	}

	if !requireSelf(c, targetID) {
		return
	}

	fileHeader, err := c.FormFile("profileImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "No profile image file uploaded."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "No profile image file uploaded."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to read uploaded profile image", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Database error while updating profile."})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	profileURL, err := h.userService.UpdateProfileImage(c.Request.Context(), targetID, data, contentType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found."})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Profile image update failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Database error while updating profile."})
		return
	}

	c.JSON(http.StatusOK, dto.UpdateProfileResponse{
		Message:    "Profile updated successfully",
		ProfileURL: profileURL,
	})
}
