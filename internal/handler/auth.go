package handler

import (
	"net/http"

	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/usecase"
)

// Register creates an unverified account and emails a verification code.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.RegisterRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	if _, err := h.auth.Register(r.Context(), usecase.RegisterParams{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	}); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Title:   "Thank you for registering with Kujira!",
		Body:    "A verification code was sent to your email. Please enter it below.",
		Caption: "Note that your code will expire within 5 minutes.",
		Success: true,
	})
}

// VerifyRegistration confirms the emailed code, flips the email-verified
// flag, and opens a session.
func (h *Handler) VerifyRegistration(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.VerificationCodeRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	user, token, err := h.auth.VerifyRegistration(r.Context(), req.Email, req.VerificationCode)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Title:    "Email verified!",
		Body:     "Thank you for verifying your email.",
		Response: payload.SessionResponse{User: user, AccessToken: token},
		Success:  true,
	})
}

// Login checks the password and emails a fresh verification code.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.LoginRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	if _, err := h.auth.Login(r.Context(), req.Email, req.Password); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Title:   "Welcome back!",
		Body:    "A verification code was sent to your email. Please enter it below.",
		Caption: "Note that your code will expire within 5 minutes.",
		Success: true,
	})
}

// VerifyLogin confirms the emailed code and opens a session.
func (h *Handler) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.VerifyLoginRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	user, token, err := h.auth.VerifyLogin(r.Context(), req.Email, req.VerificationCode, req.ThirtyDays)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Title:    "Login verified!",
		Response: payload.SessionResponse{User: user, AccessToken: token},
		Success:  true,
	})
}

// SendNewVerificationCode replaces any pending code with a fresh one.
func (h *Handler) SendNewVerificationCode(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.EmailRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	user, err := h.auth.SendNewVerificationCode(r.Context(), req.Email)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Body:     "A new verification code was sent to your email.",
		Caption:  "Note that your code will expire within 5 minutes.",
		Response: user,
		Success:  true,
	})
}

// RequestPasswordReset starts the reset flow by emailing a verification code.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.EmailRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Body:    "A verification code was sent to your email. Please enter it below.",
		Caption: "Note that your code will expire within 5 minutes.",
		Success: true,
	})
}

// VerifyPasswordResetRequest consumes the emailed code, authorizing the
// reset.
func (h *Handler) VerifyPasswordResetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.VerificationCodeRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	if err := h.auth.VerifyPasswordResetRequest(r.Context(), req.Email, req.VerificationCode); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Verification code confirmed. You may now reset your password.",
		Success: true,
	})
}

// ResetPassword replaces the password and invalidates any live session.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.ResetPasswordRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	if _, err := h.auth.ResetPassword(r.Context(), req.Email, req.NewPassword); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Password reset! Please log in with your new password.",
		Success: true,
	})
}

// Logout clears the persisted session token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.LogoutRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	if err := h.auth.Logout(r.Context(), req.UserID); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Logged out!",
		Success: true,
	})
}
