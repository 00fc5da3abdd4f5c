package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/kujira-app/kujira-api/internal/config"
	"github.com/kujira-app/kujira-api/internal/payload"
	"github.com/kujira-app/kujira-api/internal/usecase"
	sharedauth "github.com/kujira-app/kujira-api/shared/auth"
)

// Handler holds the dependencies of every HTTP handler.
type Handler struct {
	logger   *zerolog.Logger
	validate *payload.Validator
	jwtAuth  sharedauth.JWTAuthenticator
	cfg      *config.Config

	sessions   SessionStore
	auth       usecase.AuthUsecase
	users      usecase.UserUsecase
	logbooks   usecase.LogbookUsecase
	overviews  usecase.OverviewUsecase
	entries    usecase.EntryUsecase
	purchases  usecase.PurchaseUsecase
	onboarding usecase.OnboardingUsecase
}

// NewHandler creates a Handler instance.
func NewHandler(
	logger *zerolog.Logger,
	validate *payload.Validator,
	jwtAuth sharedauth.JWTAuthenticator,
	cfg *config.Config,
	sessions SessionStore,
	auth usecase.AuthUsecase,
	users usecase.UserUsecase,
	logbooks usecase.LogbookUsecase,
	overviews usecase.OverviewUsecase,
	entries usecase.EntryUsecase,
	purchases usecase.PurchaseUsecase,
	onboarding usecase.OnboardingUsecase,
) *Handler {
	return &Handler{
		logger:     logger,
		validate:   validate,
		jwtAuth:    jwtAuth,
		cfg:        cfg,
		sessions:   sessions,
		auth:       auth,
		users:      users,
		logbooks:   logbooks,
		overviews:  overviews,
		entries:    entries,
		purchases:  purchases,
		onboarding: onboarding,
	}
}

// decodePayload decodes and validates a JSON request body. Unknown fields are
// rejected.
func decodePayload[T any](r *http.Request, validate *payload.Validator) (T, error) {
	var v T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	defer r.Body.Close()

	if err := decoder.Decode(&v); err != nil {
		return v, fmt.Errorf("malformed request payload: %w", err)
	}

	if err := validate.Struct(v); err != nil {
		return v, err
	}

	return v, nil
}

// respondUsecaseError maps usecase sentinel errors to HTTP responses.
// Authentication failures deliberately stay at category granularity.
func (h *Handler) respondUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmailTaken), errors.Is(err, usecase.ErrUsernameTaken):
		respondError(h.logger, w, http.StatusBadRequest, "Account already exists.")
	case errors.Is(err, usecase.ErrAccountNotFound):
		respondError(h.logger, w, http.StatusNotFound, "Account does not exist.")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		respondError(h.logger, w, http.StatusBadRequest,
			"Incorrect password. Please enter the correct password.")
	case errors.Is(err, usecase.ErrEmailAlreadyVerified):
		respondError(h.logger, w, http.StatusBadRequest,
			"Email is already verified. Please log in.")
	case errors.Is(err, usecase.ErrEmailNotVerified):
		respondError(h.logger, w, http.StatusBadRequest,
			"Email is not verified. Please verify your registration first.")
	case errors.Is(err, usecase.ErrCodeAbsent):
		respondError(h.logger, w, http.StatusBadRequest,
			"Account does not have a verification code. Please log in or request a new verification code.")
	case errors.Is(err, usecase.ErrCodeExpired):
		respondError(h.logger, w, http.StatusBadRequest,
			"Verification code expired. Please request a new verification code.")
	case errors.Is(err, usecase.ErrCodeMismatch):
		respondError(h.logger, w, http.StatusBadRequest,
			"Invalid verification code. Please supply the correct code.")
	case errors.Is(err, usecase.ErrIncorrectPassword):
		respondError(h.logger, w, http.StatusBadRequest,
			"Incorrect old password. Please try again.")
	case errors.Is(err, usecase.ErrPasswordReused):
		respondError(h.logger, w, http.StatusBadRequest,
			"Please enter a unique new password.")
	case errors.Is(err, usecase.ErrLogbookNotFound):
		respondError(h.logger, w, http.StatusNotFound, "Logbook does not exist.")
	case errors.Is(err, usecase.ErrOverviewNotFound):
		respondError(h.logger, w, http.StatusNotFound, "Overview does not exist.")
	case errors.Is(err, usecase.ErrEntryNotFound):
		respondError(h.logger, w, http.StatusNotFound, "Entry does not exist.")
	case errors.Is(err, usecase.ErrEntryNameTaken):
		respondError(h.logger, w, http.StatusBadRequest,
			"An entry with this name already exists.")
	case errors.Is(err, usecase.ErrPurchaseNotFound):
		respondError(h.logger, w, http.StatusNotFound, "Purchase does not exist.")
	default:
		respondInternalError(h.logger, w, err)
	}
}
