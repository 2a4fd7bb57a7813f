package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/primex-app/primex_backend/internal/apperrors"
	"github.com/primex-app/primex_backend/internal/core/domain"
	portssvc "github.com/primex-app/primex_backend/internal/core/ports/services"
	"github.com/primex-app/primex_backend/internal/dto"
	"github.com/primex-app/primex_backend/internal/handlers"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SendRegistrationOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, idToken string) (*domain.User, string, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) SendForgotPasswordOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) VerifyForgotPasswordOTP(ctx context.Context, email string, otp string) error {
	args := m.Called(ctx, email, otp)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email string, otp string, newPassword string) error {
	args := m.Called(ctx, email, otp, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) DeleteAccount(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockAuthService *MockAuthService
	jwtSecret       string
}

// signTestToken creates a signed JWT for the given user.
func signTestToken(t *testing.T, secret string, userID int64) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    "primex-test",
		Subject:   fmt.Sprintf("%d", userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return signed
}

func (suite *AuthHandlerTestSuite) generateTestToken(userID int64) string {
	return signTestToken(suite.T(), suite.jwtSecret, userID)
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAuthService = new(MockAuthService)

	api := suite.router.Group("/api")
	handlers.RegisterAuthRoutes(api, suite.jwtSecret, &portssvc.ServiceContainer{Auth: suite.mockAuthService})
}

func (suite *AuthHandlerTestSuite) postJSON(path string, body any, token string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

// --- SendRegistrationOTP ---

func (suite *AuthHandlerTestSuite) TestSendRegistrationOTP_Sent() {
	suite.mockAuthService.On("SendRegistrationOTP", mock.Anything, "new@example.com").Return(nil).Once()

	rec := suite.postJSON("/api/auth/send-registration-otp", gin.H{"email": "new@example.com"}, "")

	suite.Equal(http.StatusOK, rec.Code)
	var resp dto.MessageResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("OTP Sent", resp.Message)
	suite.Equal("ok", resp.Status)
	suite.mockAuthService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestSendRegistrationOTP_EmailTaken() {
	suite.mockAuthService.On("SendRegistrationOTP", mock.Anything, "taken@example.com").Return(apperrors.ErrDuplicate).Once()

	rec := suite.postJSON("/api/auth/send-registration-otp", gin.H{"email": "taken@example.com"}, "")

	suite.Equal(http.StatusConflict, rec.Code)
	suite.Contains(rec.Body.String(), "This Email is already registered")
}

func (suite *AuthHandlerTestSuite) TestSendRegistrationOTP_InvalidEmail() {
	rec := suite.postJSON("/api/auth/send-registration-otp", gin.H{"email": "not-an-email"}, "")

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.mockAuthService.AssertNotCalled(suite.T(), "SendRegistrationOTP", mock.Anything, mock.Anything)
}

// --- Signup ---

func (suite *AuthHandlerTestSuite) TestSignup_Created() {
	suite.mockAuthService.On("Register", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).Return(nil).Once()

	rec := suite.postJSON("/api/auth/signup", gin.H{
		"email":    "new@example.com",
		"password": "s3cret-pass",
		"otp":      "123456",
		"username": "newuser",
		"name":     "New User",
	}, "")

	suite.Equal(http.StatusCreated, rec.Code)
	suite.Contains(rec.Body.String(), "Email Verified and User registered successfully")
}

func (suite *AuthHandlerTestSuite) TestSignup_InvalidOTP() {
	suite.mockAuthService.On("Register", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).Return(apperrors.ErrInvalidOTP).Once()

	rec := suite.postJSON("/api/auth/signup", gin.H{
		"email":    "new@example.com",
		"password": "s3cret-pass",
		"otp":      "000000",
		"username": "newuser",
		"name":     "New User",
	}, "")

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "Invalid OTP")
}

func (suite *AuthHandlerTestSuite) TestSignup_NoPendingOTP() {
	suite.mockAuthService.On("Register", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).Return(apperrors.ErrValidation).Once()

	rec := suite.postJSON("/api/auth/signup", gin.H{
		"email":    "new@example.com",
		"password": "s3cret-pass",
		"otp":      "123456",
		"username": "newuser",
		"name":     "New User",
	}, "")

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "Some Error Occured Try Again")
}

func (suite *AuthHandlerTestSuite) TestSignup_DuplicateUser() {
	suite.mockAuthService.On("Register", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).Return(apperrors.ErrDuplicate).Once()

	rec := suite.postJSON("/api/auth/signup", gin.H{
		"email":    "dup@example.com",
		"password": "s3cret-pass",
		"otp":      "123456",
		"username": "dup",
		"name":     "Dup",
	}, "")

	suite.Equal(http.StatusConflict, rec.Code)
	suite.Contains(rec.Body.String(), "Username or email already exists. Try another.")
}

// --- Login ---

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := &domain.User{ID: 11, Username: "alice", Email: "alice@example.com", Name: "Alice", IsActive: true}
	suite.mockAuthService.On("Login", mock.Anything, mock.MatchedBy(func(req dto.LoginRequest) bool {
		return req.Username == "alice" && req.Password == "pw"
	})).Return(user, "tok-abc", nil).Once()

	rec := suite.postJSON("/api/auth/login", gin.H{"username": "alice", "password": "pw"}, "")

	suite.Equal(http.StatusOK, rec.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("tok-abc", resp.Token)
	suite.Equal("ok", resp.Status)
	suite.Equal(int64(11), resp.UserData.ID)
	suite.Equal("alice", resp.UserData.Username)
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownUser() {
	suite.mockAuthService.On("Login", mock.Anything, mock.AnythingOfType("dto.LoginRequest")).Return(nil, "", apperrors.ErrNotFound).Once()

	rec := suite.postJSON("/api/auth/login", gin.H{"email": "ghost@example.com", "password": "pw"}, "")

	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.Contains(rec.Body.String(), "User not found")
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.mockAuthService.On("Login", mock.Anything, mock.AnythingOfType("dto.LoginRequest")).Return(nil, "", apperrors.ErrInvalidCredentials).Once()

	rec := suite.postJSON("/api/auth/login", gin.H{"email": "bob@example.com", "password": "wrong"}, "")

	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.Contains(rec.Body.String(), "Invalid credentials")
}

// --- GoogleLogin ---

func (suite *AuthHandlerTestSuite) TestGoogleLogin_Success() {
	user := &domain.User{ID: 21, Email: "carol@example.com", Name: "Carol", IsActive: true}
	suite.mockAuthService.On("GoogleLogin", mock.Anything, "id-token").Return(user, "tok-g", nil).Once()

	rec := suite.postJSON("/api/auth/googleLogin", gin.H{"idToken": "id-token"}, "")

	suite.Equal(http.StatusOK, rec.Code)
	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("tok-g", resp.Token)
	suite.Equal(int64(21), resp.UserData.ID)
}

func (suite *AuthHandlerTestSuite) TestGoogleLogin_InvalidToken() {
	suite.mockAuthService.On("GoogleLogin", mock.Anything, "bad").Return(nil, "", apperrors.ErrUnauthorized).Once()

	rec := suite.postJSON("/api/auth/googleLogin", gin.H{"idToken": "bad"}, "")

	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.Contains(rec.Body.String(), "Invalid Google token")
}

// --- Logout ---

func (suite *AuthHandlerTestSuite) TestLogout_Success() {
	suite.mockAuthService.On("Logout", mock.Anything, int64(11)).Return(nil).Once()

	rec := suite.postJSON("/api/auth/logout", gin.H{"id": 11}, suite.generateTestToken(11))

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "User logged out successfully")
}

func (suite *AuthHandlerTestSuite) TestLogout_NoToken() {
	rec := suite.postJSON("/api/auth/logout", gin.H{"id": 11}, "")

	suite.Equal(http.StatusUnauthorized, rec.Code)
	suite.mockAuthService.AssertNotCalled(suite.T(), "Logout", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogout_OtherUsersAccount() {
	rec := suite.postJSON("/api/auth/logout", gin.H{"id": 11}, suite.generateTestToken(99))

	suite.Equal(http.StatusForbidden, rec.Code)
	suite.mockAuthService.AssertNotCalled(suite.T(), "Logout", mock.Anything, mock.Anything)
}

// --- Forgot password ---

func (suite *AuthHandlerTestSuite) TestSendForgotPasswordOTP_AlwaysGenericMessage() {
	suite.mockAuthService.On("SendForgotPasswordOTP", mock.Anything, "anyone@example.com").Return(nil).Once()

	rec := suite.postJSON("/api/auth/send-forgot-password-otp", gin.H{"email": "anyone@example.com"}, "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "If an account with that email exists, a reset OTP has been sent.")
}

func (suite *AuthHandlerTestSuite) TestVerifyForgotPasswordOTP_Invalid() {
	suite.mockAuthService.On("VerifyForgotPasswordOTP", mock.Anything, "a@example.com", "111111").Return(apperrors.ErrInvalidOrExpiredOTP).Once()

	rec := suite.postJSON("/api/auth/verify-forgot-password-otp", gin.H{"email": "a@example.com", "otp": "111111"}, "")

	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.Contains(rec.Body.String(), "Invalid or expired OTP.")
}

func (suite *AuthHandlerTestSuite) TestResetPassword_Success() {
	suite.mockAuthService.On("ResetPassword", mock.Anything, "a@example.com", "654321", "new-password").Return(nil).Once()

	rec := suite.postJSON("/api/auth/reset-password", gin.H{
		"email":       "a@example.com",
		"otp":         "654321",
		"newPassword": "new-password",
	}, "")

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "Password has been reset successfully.")
}

// --- DeleteAccount ---

func (suite *AuthHandlerTestSuite) TestDeleteAccount_Success() {
	suite.mockAuthService.On("DeleteAccount", mock.Anything, int64(31)).Return(nil).Once()

	rec := suite.postJSON("/api/auth/delete-account/31", nil, suite.generateTestToken(31))

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "Account deleted successfully.")
}

func (suite *AuthHandlerTestSuite) TestDeleteAccount_UnknownUser() {
	suite.mockAuthService.On("DeleteAccount", mock.Anything, int64(32)).Return(apperrors.ErrNotFound).Once()

	rec := suite.postJSON("/api/auth/delete-account/32", nil, suite.generateTestToken(32))

	suite.Equal(http.StatusNotFound, rec.Code)
	suite.Contains(rec.Body.String(), "User not found.")
}

func (suite *AuthHandlerTestSuite) TestDeleteAccount_OtherUsersAccount() {
	rec := suite.postJSON("/api/auth/delete-account/31", nil, suite.generateTestToken(99))

	suite.Equal(http.StatusForbidden, rec.Code)
	suite.mockAuthService.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
