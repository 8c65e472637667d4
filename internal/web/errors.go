package web

// errors.go provides unified error response handling for the web layer.
//
// Every handler error goes through respondError, which:
//  1. Picks the HTTP status from the error kind (statusFor)
//  2. Maps the error to a user message and code via core.MapError
//  3. Logs the technical error with the request ID for correlation
//  4. Writes a JSON ErrorResponse

import (
	"errors"
	"net/http"

	"github.com/JonMunkholm/stringanalyzer/internal/core"
	"github.com/JonMunkholm/stringanalyzer/internal/logging"
	mw "github.com/JonMunkholm/stringanalyzer/internal/web/middleware"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor returns the HTTP status code for an error kind.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrMissingValue),
		errors.Is(err, core.ErrInvalidBody),
		errors.Is(err, core.ErrNoFilters),
		errors.Is(err, core.ErrInvalidCriteria),
		errors.Is(err, core.ErrMissingQuery),
		errors.Is(err, core.ErrUnparseableQuery):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrConflictingFilters):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, mw.ErrMissingAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, mw.ErrInvalidAPIKey):
		return http.StatusForbidden
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes it as a JSON error response.
// Client errors are logged at debug level, server errors at error level.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)

	logger := logging.FromContext(r.Context())
	attrs := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request error", attrs...)
	} else {
		logger.Debug("request rejected", attrs...)
	}

	writeJSON(w, status, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}
