package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

type SessionCartUseCase interface {
	GetCart(ctx context.Context, userID string) (*domain.SessionCart, error)
	AddSession(ctx context.Context, userID string, sessionID int64) (*domain.SessionCart, error)
	RemoveItem(ctx context.Context, userID string, cartItemID int64) (*domain.SessionCart, error)
}

type SessionLister interface {
	ListAvailable(ctx context.Context, f domain.SessionFilter) ([]domain.Session, error)
}

type SessionCartHandler struct {
	cart     SessionCartUseCase
	sessions SessionLister
	timeout  time.Duration
}

func NewSessionCartHandler(cart SessionCartUseCase, sessions SessionLister, timeout time.Duration) *SessionCartHandler {
	return &SessionCartHandler{
		cart:     cart,
		sessions: sessions,
		timeout:  timeout,
	}
}

type AddSessionRequestDTO struct {
	SessionID int64 `json:"session_id"`
}

func (h *SessionCartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cart, err := h.cart.GetCart(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *SessionCartHandler) AddSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddSessionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.SessionID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "session_id must be positive")
		return
	}

	cart, err := h.cart.AddSession(ctx, userID, req.SessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

func (h *SessionCartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cartItemID, err := parseItemID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a positive integer")
		return
	}

	cart, errRemove := h.cart.RemoveItem(ctx, userID, cartItemID)
	if errRemove != nil {
		respondServiceError(w, errRemove)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// Available lists bookable upcoming sessions, with remaining spots computed
// at read time so members see capacity claimed by other users.
func (h *SessionCartHandler) Available(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	filter := domain.SessionFilter{
		ClassTypeID: parseInt64Query(r, "class_type_id"),
		DateFrom:    r.URL.Query().Get("date_from"),
		DateTo:      r.URL.Query().Get("date_to"),
	}

	sessions, err := h.sessions.ListAvailable(ctx, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}
