package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/repository"
)

// ListLogbooks returns every logbook.
func (h *Handler) ListLogbooks(w http.ResponseWriter, r *http.Request) {
	logbooks, err := h.logbooks.ListLogbooks(r.Context())
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: logbooks,
		Success:  true,
	})
}

// FetchUserLogbooks returns the logbooks owned by one user.
func (h *Handler) FetchUserLogbooks(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.FetchUserLogbooksRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	logbooks, err := h.logbooks.ListUserLogbooks(r.Context(), req.OwnerID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: logbooks,
		Success:  true,
	})
}

// GetLogbook returns one logbook.
func (h *Handler) GetLogbook(w http.ResponseWriter, r *http.Request) {
	logbook, err := h.logbooks.GetLogbook(r.Context(), chi.URLParam(r, "logbookId"))
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: logbook,
		Success:  true,
	})
}

// CreateLogbook creates a logbook together with its overview.
func (h *Handler) CreateLogbook(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.CreateLogbookRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	logbook, err := h.logbooks.CreateLogbook(r.Context(), req.Name, req.OwnerID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Body:     "Logbook created!",
		Response: logbook,
		Success:  true,
	})
}

// UpdateLogbook patches the supplied logbook fields.
func (h *Handler) UpdateLogbook(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.UpdateLogbookRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	logbook, err := h.logbooks.UpdateLogbook(r.Context(), chi.URLParam(r, "logbookId"),
		repository.UpdateLogbookParams{Name: req.Name})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:     "Logbook updated!",
		Response: logbook,
		Success:  true,
	})
}

// DeleteLogbook removes a logbook and everything beneath it.
func (h *Handler) DeleteLogbook(w http.ResponseWriter, r *http.Request) {
	if err := h.logbooks.DeleteLogbook(r.Context(), chi.URLParam(r, "logbookId")); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Logbook deleted!",
		Success: true,
	})
}
