package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
)

type SessionsHandler struct {
	sessions repository.SessionRepository
	timeout  time.Duration
}

func NewSessionsHandler(sessions repository.SessionRepository, timeout time.Duration) *SessionsHandler {
	return &SessionsHandler{
		sessions: sessions,
		timeout:  timeout,
	}
}

func (h *SessionsHandler) ListClassTypes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	classTypes, err := h.sessions.ListClassTypes(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"class_types": classTypes})
}

// CreateSession is trainer-only; the route is wrapped in RequireRole.
func (h *SessionsHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	trainerID := getUserIDFromContext(r.Context())
	if trainerID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req domain.NewSession
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ClassTypeID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_class_type", "class_type_id must be positive")
		return
	}
	if req.Date == "" || req.StartTime == "" || req.EndTime == "" {
		respondError(w, http.StatusBadRequest, "invalid_schedule", "date, start_time and end_time are required")
		return
	}
	if req.MaxMembers <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_capacity", "max_members must be positive")
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return
	}

	session, err := h.sessions.CreateSession(ctx, trainerID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (h *SessionsHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	bookings, err := h.sessions.ListBookings(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

func (h *SessionsHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	bookingID, err := parseIDParam(r, "booking_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_booking_id", "booking id must be a positive integer")
		return
	}

	if errCancel := h.sessions.CancelBooking(ctx, userID, bookingID); errCancel != nil {
		respondServiceError(w, errCancel)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled"})
}
