package handler

import (
	"net/http"

	"github.com/kujira-app/kujira-api/internal/model"
	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/usecase"
)

// OnboardNewUser seeds a new user's first logbook in one request.
func (h *Handler) OnboardNewUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodePayload[payload.OnboardRequest](r, h.validate)
	if err != nil {
		respondValidationError(h.logger, w, err)
		return
	}

	result, err := h.onboarding.OnboardNewUser(r.Context(), usecase.OnboardParams{
		UserID:             req.UserID,
		LogbookID:          req.LogbookID,
		Income:             req.Income,
		Savings:            req.Savings,
		RecurringPurchases: onboardPurchases(req.RecurringPurchases),
		IncomingPurchases:  onboardPurchases(req.IncomingPurchases),
		RecurringEntry: usecase.OnboardEntry{
			ID:        req.RecurringEntry.ID,
			TotalCost: req.RecurringEntry.TotalCost,
		},
		IncomingEntry: usecase.OnboardEntry{
			ID:        req.IncomingEntry.ID,
			TotalCost: req.IncomingEntry.TotalCost,
		},
	})
	if err != nil {
		h.respondUsecaseError(w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, Response{
		Title:    "You're all set!",
		Body:     "Your logbook is ready to go.",
		Response: result,
		Success:  true,
	})
}

func onboardPurchases(seeds []payload.OnboardPurchase) []usecase.OnboardPurchase {
	out := make([]usecase.OnboardPurchase, len(seeds))
	for i, seed := range seeds {
		out[i] = usecase.OnboardPurchase{
			Category:    model.Category(seed.Category),
			Description: seed.Description,
			Cost:        seed.Cost,
		}
	}
	return out
}
