package dto

// SendRegistrationOTPRequest asks for a verification code to be emailed to a
// not-yet-registered address.
type SendRegistrationOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterRequest completes registration with the emailed OTP.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	OTP      string `json:"otp" binding:"required,otp"`
	Username string `json:"username" binding:"required"`
	Name     string `json:"name"`
}

// LoginRequest carries credentials; username takes precedence when email is
// absent.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the raw ID token obtained by the client from
// Google sign-in.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LogoutRequest identifies the user whose active flag should be cleared.
type LogoutRequest struct {
	ID int64 `json:"id" binding:"required"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyForgotPasswordOTPRequest checks a reset code without consuming it.
type VerifyForgotPasswordOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,otp"`
}

// ResetPasswordRequest replaces the password after OTP re-validation.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,otp"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// MessageResponse is the generic success/failure body.
type MessageResponse struct {
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

// LoginResponse is returned by login and googleLogin.
type LoginResponse struct {
	Token    string   `json:"token"`
	Status   string   `json:"status"`
	UserData UserData `json:"userData"`
}
