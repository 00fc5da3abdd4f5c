package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/repository"
)

// ListUsers returns every user account.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: users,
		Success:  true,
	})
}

// GetUser returns one user account.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: user,
		Success:  true,
	})
}

// UpdateUser patches the supplied profile fields.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.UpdateUserRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	params := repository.UpdateUserParams{
		Email:        req.Email,
		Username:     req.Username,
		MobileNumber: req.MobileNumber,
		Onboarded:    req.Onboarded,
	}
	if req.Currency != nil {
		currency := model.Currency(*req.Currency)
		params.Currency = &currency
	}
	if req.Theme != nil {
		theme := model.Theme(*req.Theme)
		params.Theme = &theme
	}

	user, err := h.users.UpdateUser(r.Context(), chi.URLParam(r, "userId"), params)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:     "Account updated!",
		Response: user,
		Success:  true,
	})
}

// UpdatePassword changes the password after re-checking the current one.
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.UpdatePasswordRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	userID := chi.URLParam(r, "userId")
	if err := h.users.UpdatePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Password updated!",
		Success: true,
	})
}

// DeleteUser removes the account and everything it owns.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "userId")); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Account deleted. Sorry to see you go :'(",
		Success: true,
	})
}
