package payload

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerificationCodeRequest is the payload for the code-confirmation routes.
type VerificationCodeRequest struct {
	Email            string `json:"email"            validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required,len=8,numeric"`
}

// VerifyLoginRequest additionally carries the "remember me" flag.
type VerifyLoginRequest struct {
	Email            string `json:"email"            validate:"required,email"`
	VerificationCode string `json:"verificationCode" validate:"required,len=8,numeric"`
	ThirtyDays       bool   `json:"thirtyDays"`
}

// EmailRequest is the payload for routes keyed by email only.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest is the payload for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// LogoutRequest is the payload for PATCH /auth/logout.
type LogoutRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// SessionResponse is returned when a verification flow completes.
type SessionResponse struct {
	User        any    `json:"user"`
	AccessToken string `json:"accessToken"`
}
