package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the full route tree. Auth routes are open; every other group
// sits behind the authorization gate.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(h.logger))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/verify-registration", h.VerifyRegistration)
			r.Post("/login", h.Login)
			r.Post("/verify-login", h.VerifyLogin)
			r.Post("/send-new-verification-code", h.SendNewVerificationCode)
			r.Post("/request-password-reset", h.RequestPasswordReset)
			r.Post("/verify-password-reset-request", h.VerifyPasswordResetRequest)
			r.Post("/reset-password", h.ResetPassword)
			r.Patch("/logout", h.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuthorizedUser)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.ListUsers)
				r.Get("/{userId}", h.GetUser)
				r.Patch("/{userId}", h.UpdateUser)
				r.Patch("/{userId}/update-password", h.UpdatePassword)
				r.Delete("/{userId}", h.DeleteUser)
			})

			r.Route("/logbooks", func(r chi.Router) {
				r.Get("/", h.ListLogbooks)
				r.Post("/fetch-user-logbooks", h.FetchUserLogbooks)
				r.Get("/{logbookId}", h.GetLogbook)
				r.Post("/", h.CreateLogbook)
				r.Patch("/{logbookId}", h.UpdateLogbook)
				r.Delete("/{logbookId}", h.DeleteLogbook)
			})

			r.Route("/overviews", func(r chi.Router) {
				r.Get("/", h.ListOverviews)
				r.Post("/fetch-logbook-overview", h.FetchLogbookOverview)
				r.Get("/{overviewId}", h.GetOverview)
				r.Post("/", h.CreateOverview)
				r.Patch("/{overviewId}", h.UpdateOverview)
				r.Delete("/{overviewId}", h.DeleteOverview)
			})

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", h.ListEntries)
				r.Post("/fetch-overview-entries", h.FetchOverviewEntries)
				r.Post("/fetch-logbook-entries", h.FetchLogbookEntries)
				r.Get("/{entryId}", h.GetEntry)
				r.Post("/", h.CreateEntry)
				r.Patch("/{entryId}", h.UpdateEntry)
				r.Delete("/{entryId}", h.DeleteEntry)
			})

			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", h.ListPurchases)
				r.Post("/fetch-entry-purchases", h.FetchEntryPurchases)
				r.Get("/{purchaseId}", h.GetPurchase)
				r.Post("/", h.CreatePurchase)
				r.Patch("/{purchaseId}", h.UpdatePurchase)
				r.Delete("/bulk-delete-purchases", h.BulkDeletePurchases)
				r.Delete("/delete-all-entry-purchases", h.DeleteEntryPurchases)
				r.Delete("/{purchaseId}", h.DeletePurchase)
			})

			r.Post("/onboarding/onboard-new-user", h.OnboardNewUser)
		})
	})

	return r
}
