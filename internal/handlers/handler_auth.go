package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/primex-app/primex_backend/internal/apperrors"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/dto"
	"github.com/primex-app/primex_backend/internal/middleware"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade) *AuthHandler {
	return &AuthHandler{authService: as}
}

// RegisterAuthRoutes sets up the routes for authentication. Routes that act
// on an existing account additionally require a session token proving the
// caller is that account.
func RegisterAuthRoutes(rg *gin.RouterGroup, jwtSecret string, services *portssvc.ServiceContainer) {
	registerCustomValidators()
	h := NewAuthHandler(services.Auth)

	auth := rg.Group("/auth")
	{
		auth.POST("/send-registration-otp", h.SendRegistrationOTP)
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/googleLogin", h.GoogleLogin)
		auth.POST("/send-forgot-password-otp", h.SendForgotPasswordOTP)
		auth.POST("/verify-forgot-password-otp", h.VerifyForgotPasswordOTP)
		auth.POST("/reset-password", h.ResetPassword)

		identified := auth.Group("", middleware.AuthMiddleware(jwtSecret))
		identified.POST("/logout", h.Logout)
		identified.POST("/delete-account/:userId", h.DeleteAccount)
	}
}

// SendRegistrationOTP godoc
// @Summary Send a registration OTP
// @Description Emails a one-time verification code to a not-yet-registered address.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SendRegistrationOTPRequest true "Target email"
// @Success 200 {object} dto.MessageResponse
// @Failure 409 {object} dto.MessageResponse "Email already registered"
// @Router /auth/send-registration-otp [post]
func (h *AuthHandler) SendRegistrationOTP(c *gin.Context) {
	var req dto.SendRegistrationOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}

	err := h.authService.SendRegistrationOTP(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, dto.MessageResponse{Message: "This Email is already registered"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to send registration OTP", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "An error occurred."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "OTP Sent", Status: "ok"})
}

// Signup godoc
// @Summary Complete OTP-gated registration
// @Description Validates the emailed OTP and creates the account transactionally.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.MessageResponse "Missing or invalid OTP"
// @Failure 409 {object} dto.MessageResponse "Username or email already exists"
// @Failure 500 {object} dto.MessageResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}

	err := h.authService.Register(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, dto.MessageResponse{
			Message: "Email Verified and User registered successfully",
			Status:  "ok",
		})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Some Error Occured Try Again"})
	case errors.Is(err, apperrors.ErrInvalidOTP):
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid OTP"})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, dto.MessageResponse{Message: "Username or email already exists. Try another."})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Signup failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Database error"})
	}
}

// Login godoc
// @Summary Credential login
// @Description Authenticates by username or email and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.MessageResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "User not found"})
			return
		}
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Invalid credentials"})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Login failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "An error occurred."})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    token,
		Status:   "ok",
		UserData: dto.ToUserData(user),
	})
}

// GoogleLogin godoc
// @Summary Google sign-in
// @Description Verifies a Google ID token and creates or reactivates the account.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.MessageResponse "Invalid Google token"
// @Router /auth/googleLogin [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}

	user, token, err := h.authService.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Warn("Google login rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Invalid Google token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:    token,
		Status:   "ok",
		UserData: dto.ToUserData(user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}

	if !requireSelf(c, req.ID) {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.ID); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Logout failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "An error occurred."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "User logged out successfully"})
}

// SendForgotPasswordOTP responds with the same body whether or not the email
// is registered, to prevent account enumeration.
func (h *AuthHandler) SendForgotPasswordOTP(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}

	if err := h.authService.SendForgotPasswordOTP(c.Request.Context(), req.Email); err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to send forgot-password OTP", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "An error occurred."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "If an account with that email exists, a reset OTP has been sent.",
		Status:  "ok",
	})
}

func (h *AuthHandler) VerifyForgotPasswordOTP(c *gin.Context) {
	var req dto.VerifyForgotPasswordOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}

	if err := h.authService.VerifyForgotPasswordOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		if errors.Is(err, apperrors.ErrInvalidOrExpiredOTP) {
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid or expired OTP."})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Forgot-password OTP verification failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "An error occurred."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "OTP verified successfully.", Status: "ok"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid request body"})
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidOrExpiredOTP) {
			c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid or expired OTP."})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Password reset failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "An error occurred."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Password has been reset successfully.", Status: "ok"})
}

// DeleteAccount godoc
// @Summary Delete an account
// @Description Removes the user row transactionally, then best-effort deletes the profile asset.
// @Tags auth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse
// @Failure 500 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /auth/delete-account/{userId} [post]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: "Invalid user id"})
		return
	}

	if !requireSelf(c, targetID) {
		return
	}

	if err := h.authService.DeleteAccount(c.Request.Context(), targetID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found."})
			return
		}
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Account deletion failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.MessageResponse{Message: "Database error during account deletion."})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted successfully.", Status: "ok"})
}

// requireSelf aborts with 401/403 unless the authenticated user is the
// target of the operation.
func requireSelf(c *gin.Context, targetID int64) bool {
	authedID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.MessageResponse{Message: "Not Authorized"})
		return false
	}
	if authedID != targetID {
		c.JSON(http.StatusForbidden, dto.MessageResponse{Message: "Forbidden"})
		return false
	}
	return true
}
