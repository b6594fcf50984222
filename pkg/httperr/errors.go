package httperr

import (
	"encoding/json"
	"net/http"
)

// Error codes for standardized error responses
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeNoActiveGame   = "no_active_game"
	CodeGameFinished   = "game_finished"
	CodeInternalError  = "internal_error"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondError writes a standardized error response.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   code,
		Message: message,
	})
}

// RespondBadRequest writes a 400 invalid_request response.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidRequest, message)
}

// RespondNotFound writes a not found error response
func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

// RespondConflict writes a 409 response.
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError writes an internal server error response
func RespondInternalError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, message)
}
