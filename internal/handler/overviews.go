package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/repository"
	"github.com/kujira-app/kujira-api/internal/usecase"
)

// ListOverviews returns every overview.
func (h *Handler) ListOverviews(w http.ResponseWriter, r *http.Request) {
	overviews, err := h.overviews.ListOverviews(r.Context())
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: overviews,
		Success:  true,
	})
}

// FetchLogbookOverview returns the overview of one logbook.
func (h *Handler) FetchLogbookOverview(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.FetchLogbookOverviewRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	overview, err := h.overviews.GetLogbookOverview(r.Context(), req.LogbookID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: overview,
		Success:  true,
	})
}

// GetOverview returns one overview.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.overviews.GetOverview(r.Context(), chi.URLParam(r, "overviewId"))
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: overview,
		Success:  true,
	})
}

// CreateOverview creates an overview for a logbook.
func (h *Handler) CreateOverview(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.CreateOverviewRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	overview, err := h.overviews.CreateOverview(r.Context(), usecase.CreateOverviewParams{
		Income:    req.Income,
		Savings:   req.Savings,
		LogbookID: req.LogbookID,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Body:     "Overview created!",
		Response: overview,
		Success:  true,
	})
}

// UpdateOverview patches the supplied overview fields.
func (h *Handler) UpdateOverview(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.UpdateOverviewRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	overview, err := h.overviews.UpdateOverview(r.Context(), chi.URLParam(r, "overviewId"),
		repository.UpdateOverviewParams{Income: req.Income, Savings: req.Savings})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:     "Overview updated!",
		Response: overview,
		Success:  true,
	})
}

// DeleteOverview removes an overview and its entries.
func (h *Handler) DeleteOverview(w http.ResponseWriter, r *http.Request) {
	if err := h.overviews.DeleteOverview(r.Context(), chi.URLParam(r, "overviewId")); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Overview deleted!",
		Success: true,
	})
}
