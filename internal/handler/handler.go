package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentlify/internal/checkout"
	"rentlify/internal/model"
	"rentlify/internal/orderapi"
	"rentlify/internal/session"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// ValidationErrorResponse lists the fields that failed a checkout step.
type ValidationErrorResponse struct {
	model.ErrorResponse
	Step   string            `json:"step"`
	Fields map[string]string `json:"fields"`
}

// OrderErrorResponse is a failed order submission.
type OrderErrorResponse struct {
	model.ErrorResponse
	Inventory bool `json:"inventory"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", code).Int("status", status).Msg(message)
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, logger zerolog.Logger) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", logger)
		return false
	}
	return true
}

// sessionID returns the id stored by middleware.RequireSession.
func sessionID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (string, bool) {
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeSessionRequired, model.ErrSessionRequired.Message, logger)
	}
	return id, ok
}

// writeServiceError maps service and domain errors onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var (
		validationErr *checkout.ValidationError
		submissionErr *checkout.SubmissionError
		domainErr     *model.DomainError
		apiErr        *orderapi.APIError
	)

	switch {
	case errors.As(err, &validationErr):
		logger.Debug().Str("step", validationErr.Step.String()).Msg("checkout validation failed")
		writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			ErrorResponse: model.ErrorResponse{Error: model.ErrCodeValidationFailed, Message: validationErr.Error()},
			Step:          validationErr.Step.String(),
			Fields:        validationErr.Fields,
		})
	case errors.As(err, &submissionErr):
		logger.Warn().Err(submissionErr.Err).Bool("inventory", submissionErr.Inventory).Msg("order submission failed")
		writeJSON(w, http.StatusBadGateway, OrderErrorResponse{
			ErrorResponse: model.ErrorResponse{Error: model.ErrCodeOrderFailed, Message: submissionErr.Message},
			Inventory:     submissionErr.Inventory,
		})
	case errors.As(err, &domainErr):
		writeError(w, domainStatus(domainErr.Code), domainErr.Code, domainErr.Message, logger)
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			writeError(w, apiErr.StatusCode, model.ErrCodeOrderFailed, apiErr.Message, logger)
			return
		}
		writeError(w, http.StatusBadGateway, model.ErrCodeUpstreamUnavailable, "order service is unavailable", logger)
	default:
		logger.Error().Err(err).Msg("unhandled service error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
	}
}

func domainStatus(code string) int {
	switch code {
	case model.ErrCodeProductNotFound, model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeSubmitInProgress:
		return http.StatusConflict
	case model.ErrCodeSessionExpired, model.ErrCodeSessionRequired:
		return http.StatusUnauthorized
	case model.ErrCodeProductUnavailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
