package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	sharedauth "github.com/kujira-app/kujira-api/shared/auth"
)

// contactCaption is appended to every error response.
const contactCaption = "If the issue persists, please contact kujira.help@outlook.com."

// Response is the single response shape of the API. Every success and failure
// body is built from this fixed field set.
type Response struct {
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Response any    `json:"response,omitempty"`
	Success  bool   `json:"success"`
}

func respondJSON(logger *zerolog.Logger, w http.ResponseWriter, code int, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		logger.Error().Err(err).Msg("failed to write response")
	}
}

func respondError(logger *zerolog.Logger, w http.ResponseWriter, code int, body string) {
	respondJSON(logger, w, code, Response{
		Body:    body,
		Caption: contactCaption,
	})
}

// respondInternalError hides the underlying cause from the client. The cause
// is logged server-side; configuration errors name the missing variable in
// the log only.
func respondInternalError(logger *zerolog.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, sharedauth.ErrMissingSecret) {
		logger.Error().Err(err).Msg("required secret key environment variable is not set")
	} else {
		logger.Error().Err(err).Msg("unexpected error")
	}

	respondError(logger, w, http.StatusInternalServerError,
		"There was an error of unknown origin. Please try again.")
}

func respondValidationError(logger *zerolog.Logger, w http.ResponseWriter, err error) {
	respondError(logger, w, http.StatusBadRequest, fmt.Sprintf("Invalid input: %s.", err))
}
