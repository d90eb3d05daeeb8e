package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
	"github.com/Mahmoud-ctrl/GymMang/internal/service"
)

type sessionCartMock struct {
	cart *domain.SessionCart
	err  error
}

func (m sessionCartMock) GetCart(ctx context.Context, userID string) (*domain.SessionCart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m sessionCartMock) AddSession(ctx context.Context, userID string, sessionID int64) (*domain.SessionCart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m sessionCartMock) RemoveItem(ctx context.Context, userID string, cartItemID int64) (*domain.SessionCart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

type sessionListerMock struct {
	sessions []domain.Session
	err      error
}

func (m sessionListerMock) ListAvailable(ctx context.Context, f domain.SessionFilter) ([]domain.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sessions, nil
}

func TestSessionCartGet_Success(t *testing.T) {
	mock := sessionCartMock{
		cart: &domain.SessionCart{
			Items: []domain.SessionCartItem{
				{CartItemID: 1, SessionID: 42, ClassType: "Yoga", Price: 15.00},
			},
			TotalItems: 1,
			TotalPrice: 15.00,
		},
	}

	handler := NewSessionCartHandler(mock, sessionListerMock{}, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("GET", "/", nil), "user-1")

	handler.GetCart(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.SessionCart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.TotalItems != 1 {
		t.Errorf("Expected total_items 1, got %d", response.TotalItems)
	}
}

func TestSessionCartAdd_Success(t *testing.T) {
	mock := sessionCartMock{
		cart: &domain.SessionCart{
			Items: []domain.SessionCartItem{
				{CartItemID: 1, SessionID: 42, ClassType: "Yoga", Price: 15.00},
			},
			TotalItems: 1,
			TotalPrice: 15.00,
		},
	}

	handler := NewSessionCartHandler(mock, sessionListerMock{}, 5*time.Second)
	reqBytes, _ := json.Marshal(&AddSessionRequestDTO{SessionID: 42})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

	handler.AddSession(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}
}

func TestSessionCartAdd_Duplicate(t *testing.T) {
	handler := NewSessionCartHandler(sessionCartMock{err: repository.ErrSessionInCart}, sessionListerMock{}, 5*time.Second)

	reqBytes, _ := json.Marshal(&AddSessionRequestDTO{SessionID: 42})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

	handler.AddSession(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Error == "" {
		t.Error("Expected non-empty error message")
	}
}

func TestSessionCartAdd_Full(t *testing.T) {
	handler := NewSessionCartHandler(sessionCartMock{err: service.ErrSessionFull}, sessionListerMock{}, 5*time.Second)

	reqBytes, _ := json.Marshal(&AddSessionRequestDTO{SessionID: 42})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

	handler.AddSession(recorder, request)

	if recorder.Code != http.StatusConflict {
		t.Errorf("Expected status code %d, got %d", http.StatusConflict, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "session_full" {
		t.Errorf("Expected error code 'session_full', got '%s'", response.Code)
	}
}

func TestSessionCartAdd_InvalidSessionID(t *testing.T) {
	handler := NewSessionCartHandler(sessionCartMock{cart: &domain.SessionCart{}}, sessionListerMock{}, 5*time.Second)

	reqBytes, _ := json.Marshal(&AddSessionRequestDTO{SessionID: 0})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

	handler.AddSession(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestSessionCartRemove_Success(t *testing.T) {
	mock := sessionCartMock{
		cart: &domain.SessionCart{Items: []domain.SessionCartItem{}, TotalItems: 0, TotalPrice: 0},
	}

	handler := NewSessionCartHandler(mock, sessionListerMock{}, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/items/1", nil)
	request = withUser(request, "user-1")
	request = withItemID(request, "1")

	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.SessionCart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
}

func TestSessionCartAvailable(t *testing.T) {
	lister := sessionListerMock{
		sessions: []domain.Session{
			{ID: 1, ClassType: "Yoga", SpotsRemaining: 3},
			{ID: 2, ClassType: "HIIT", SpotsRemaining: 0, IsFull: true},
		},
	}

	handler := NewSessionCartHandler(sessionCartMock{}, lister, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/available?class_type_id=1", nil)

	handler.Available(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response struct {
		Sessions []domain.Session `json:"sessions"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(response.Sessions))
	}
	if !response.Sessions[1].IsFull {
		t.Error("Expected second session to be full")
	}
}
