package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/promptlib/internal/codec"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// AppError carries an HTTP status and a message that is safe to send to
// the client. Internal holds the underlying error for logging only.
type AppError struct {
	Code     int    `json:"-"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Internal
}

func newNotFound(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Type: "not_found", Message: message}
}

func newBadRequest(message string, internal error) *AppError {
	return &AppError{Code: http.StatusBadRequest, Type: "bad_request", Message: message, Internal: internal}
}

func newUnauthorized() *AppError {
	return &AppError{Code: http.StatusUnauthorized, Type: "unauthorized", Message: "invalid credentials"}
}

func newInternal(internal error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "an internal error occurred",
		Internal: internal,
	}
}

// classify maps any error to an AppError. Validation and malformed input
// become 400s, anything unrecognized a generic 500.
func classify(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrInvalidSortMode),
		errors.Is(err, types.ErrInvalidTagValue):
		return newBadRequest(err.Error(), err)
	case errors.Is(err, codec.ErrMalformedDocument),
		errors.Is(err, codec.ErrUnknownFormat):
		return newBadRequest(err.Error(), err)
	case errors.Is(err, types.ErrNotFound):
		return newNotFound("prompt not found")
	}
	return newInternal(err)
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error *AppError `json:"error"`
}

// handleError writes err as a JSON error response. Server-side failures
// are logged with the request ID; their detail never reaches the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := classify(err)
	if appErr.Code >= http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	writeJSON(w, appErr.Code, errorBody{Error: appErr})
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
