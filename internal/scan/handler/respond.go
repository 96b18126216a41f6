package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pharmatrack/stock-service/internal/model"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the sentinel taxonomy onto HTTP statuses so the
// operator UI can distinguish "fix your input" from "state moved on".
func respondDomainError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrTagNotFound),
		errors.Is(err, model.ErrBatchNotFound),
		errors.Is(err, model.ErrNoPendingMovement):
		return http.StatusNotFound
	case errors.Is(err, model.ErrQuantityInvalid):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrConfirmationPending),
		errors.Is(err, model.ErrStaleMovement),
		errors.Is(err, model.ErrSessionInactive):
		return http.StatusConflict
	case errors.Is(err, model.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
