package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
	"github.com/Mahmoud-ctrl/GymMang/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondSignupError treats anything that is not a known repository failure
// as a validation problem. The signup service reports bad input with plain
// errors whose messages are safe to show.
func respondSignupError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrEmailTaken) {
		respondServiceError(w, err)
		return
	}
	respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
}

// respondServiceError maps domain failures to HTTP statuses. Anything not
// recognized is a 500 with a generic body; internals never leak to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Product not found")
	case errors.Is(err, repository.ErrEquipmentNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Equipment not found")
	case errors.Is(err, repository.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Session not found")
	case errors.Is(err, repository.ErrItemNotFound), errors.Is(err, repository.ErrCartNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Item not found in cart")
	case errors.Is(err, repository.ErrBookingNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Booking not found")
	case errors.Is(err, repository.ErrSessionInCart):
		respondError(w, http.StatusConflict, "already_exists", "Session already in your cart")
	case errors.Is(err, service.ErrSessionFull):
		respondError(w, http.StatusConflict, "session_full", "Session is full")
	case errors.Is(err, repository.ErrEmailTaken):
		respondError(w, http.StatusConflict, "already_exists", "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, service.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "Your cart is empty")
	case errors.Is(err, service.ErrPaymentFailed):
		respondError(w, http.StatusPaymentRequired, "payment_failed", "Payment could not be processed")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
