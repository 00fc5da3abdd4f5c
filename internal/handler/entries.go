package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/repository"
	"github.com/kujira-app/kujira-api/internal/usecase"
)

// ListEntries returns every entry.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entries.ListEntries(r.Context())
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: entries,
		Success:  true,
	})
}

// FetchOverviewEntries returns the entries attached to one overview.
func (h *Handler) FetchOverviewEntries(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.FetchOverviewEntriesRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	entries, err := h.entries.ListOverviewEntries(r.Context(), req.OverviewID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: entries,
		Success:  true,
	})
}

// FetchLogbookEntries returns the entries attached to one logbook.
func (h *Handler) FetchLogbookEntries(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.FetchLogbookEntriesRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	entries, err := h.entries.ListLogbookEntries(r.Context(), req.LogbookID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: entries,
		Success:  true,
	})
}

// GetEntry returns one entry.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.entries.GetEntry(r.Context(), chi.URLParam(r, "entryId"))
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: entry,
		Success:  true,
	})
}

// CreateEntry creates an entry under an overview or a logbook.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.CreateEntryRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	entry, err := h.entries.CreateEntry(r.Context(), usecase.CreateEntryParams{
		Name:       req.Name,
		OverviewID: req.OverviewID,
		LogbookID:  req.LogbookID,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Body:     "Entry created!",
		Response: entry,
		Success:  true,
	})
}

// UpdateEntry patches the supplied entry fields.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.UpdateEntryRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	entry, err := h.entries.UpdateEntry(r.Context(), chi.URLParam(r, "entryId"),
		repository.UpdateEntryParams{
			Name:                 req.Name,
			TotalSpent:           req.TotalSpent,
			NonMonthlyTotalSpent: req.NonMonthlyTotalSpent,
			Budget:               req.Budget,
			OverviewID:           req.OverviewID,
			LogbookID:            req.LogbookID,
		})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:     "Entry updated!",
		Response: entry,
		Success:  true,
	})
}

// DeleteEntry removes an entry and its purchases.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.entries.DeleteEntry(r.Context(), chi.URLParam(r, "entryId")); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Entry deleted!",
		Success: true,
	})
}
