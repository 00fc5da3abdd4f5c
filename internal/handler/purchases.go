package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/repository"
	"github.com/kujira-app/kujira-api/internal/usecase"
)

// ListPurchases returns every purchase.
func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.purchases.ListPurchases(r.Context())
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: purchases,
		Success:  true,
	})
}

// FetchEntryPurchases returns an entry's purchases in placement order.
func (h *Handler) FetchEntryPurchases(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.FetchEntryPurchasesRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	purchases, err := h.purchases.ListEntryPurchases(r.Context(), req.EntryID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: purchases,
		Success:  true,
	})
}

// GetPurchase returns one purchase.
func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	purchase, err := h.purchases.GetPurchase(r.Context(), chi.URLParam(r, "purchaseId"))
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Response: purchase,
		Success:  true,
	})
}

// CreatePurchase appends a purchase to an entry.
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.CreatePurchaseRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	purchase, err := h.purchases.CreatePurchase(r.Context(), usecase.CreatePurchaseParams{
		Category:    model.Category(req.Category),
		Description: req.Description,
		Cost:        req.Cost,
		EntryID:     req.EntryID,
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Body:     "Purchase created!",
		Response: purchase,
		Success:  true,
	})
}

// UpdatePurchase patches the supplied purchase fields.
func (h *Handler) UpdatePurchase(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.UpdatePurchaseRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	params := repository.UpdatePurchaseParams{
		Description: req.Description,
		Cost:        req.Cost,
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		params.Category = &category
	}

	purchase, err := h.purchases.UpdatePurchase(r.Context(), chi.URLParam(r, "purchaseId"), params)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:     "Purchase updated!",
		Response: purchase,
		Success:  true,
	})
}

// DeletePurchase removes one purchase.
func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	if err := h.purchases.DeletePurchase(r.Context(), chi.URLParam(r, "purchaseId")); err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:    "Purchase deleted!",
		Success: true,
	})
}

// BulkDeletePurchases removes the named purchases in one round trip.
func (h *Handler) BulkDeletePurchases(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.BulkDeletePurchasesRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	deleted, err := h.purchases.BulkDeletePurchases(r.Context(), req.PurchaseIDs)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:     "Purchases deleted!",
		Response: deleted,
		Success:  true,
	})
}

// DeleteEntryPurchases removes every purchase attached to an entry.
func (h *Handler) DeleteEntryPurchases(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.DeleteEntryPurchasesRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	deleted, err := h.purchases.DeleteAllEntryPurchases(r.Context(), req.EntryID)
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, Response{
		Body:     "Purchases deleted!",
		Response: deleted,
		Success:  true,
	})
}
