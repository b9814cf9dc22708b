package api

import (
	"encoding/json"
	"net/http"

	"github.com/udisondev/moderation/internal/admin"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodePlayerOffline     = "PLAYER_OFFLINE"
	CodeUnsupportedAction = "UNSUPPORTED_ACTION"
	CodeNotImplemented    = "NOT_IMPLEMENTED"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternalError     = "INTERNAL_ERROR"
)

// MessageResponse is the body of a successful admin action.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Error: APIError{Code: code, Message: message}})
}

// WriteInternalError writes a 500 without leaking the cause.
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, "Internal server error")
}

// WriteOutcome maps an admin outcome to its HTTP status and body.
func WriteOutcome(w http.ResponseWriter, out admin.Outcome) {
	status, code := statusOf(out.Status)
	if out.OK() {
		WriteJSON(w, status, MessageResponse{Message: out.Message})
		return
	}
	WriteError(w, status, code, out.Message)
}

func statusOf(s admin.Status) (int, string) {
	switch s {
	case admin.StatusSuccess:
		return http.StatusOK, ""
	case admin.StatusInvalidArgument:
		return http.StatusBadRequest, CodeInvalidRequest
	case admin.StatusNotFound:
		return http.StatusNotFound, CodePlayerNotFound
	case admin.StatusPlayerOffline:
		return http.StatusNotFound, CodePlayerOffline
	case admin.StatusUnsupported:
		return http.StatusBadRequest, CodeUnsupportedAction
	case admin.StatusNotImplemented:
		return http.StatusNotImplemented, CodeNotImplemented
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}
