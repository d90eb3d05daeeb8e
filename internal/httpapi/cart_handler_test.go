package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
)

type cartServiceMock struct {
	cart *domain.Cart
	err  error
}

func (m cartServiceMock) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m cartServiceMock) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m cartServiceMock) UpdateQuantity(ctx context.Context, userID string, cartItemID int64, quantity int) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m cartServiceMock) RemoveItem(ctx context.Context, userID string, cartItemID int64) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func withUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), "user_id", userID)
	return r.WithContext(ctx)
}

func withItemID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("item_id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestGetCart_Success(t *testing.T) {
	mock := cartServiceMock{
		cart: &domain.Cart{
			Items: []domain.CartItem{
				{CartItemID: 1, ProductID: 9, Quantity: 2, Price: 10.00},
			},
			TotalItems: 2,
			TotalPrice: 20.00,
		},
	}

	handler := NewCartHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("GET", "/", nil), "user-1")

	handler.GetCart(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.TotalItems != 2 {
		t.Errorf("Expected total_items 2, got %d", response.TotalItems)
	}
	if response.TotalPrice != 20.00 {
		t.Errorf("Expected total_price 20.00, got %f", response.TotalPrice)
	}
}

func TestGetCart_Unauthorized(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: &domain.Cart{}}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/", nil)
	// No user_id in context

	handler.GetCart(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "unauthorized" {
		t.Errorf("Expected error code 'unauthorized', got '%s'", response.Code)
	}
}

func TestAddItem_Success(t *testing.T) {
	mock := cartServiceMock{
		cart: &domain.Cart{
			Items: []domain.CartItem{
				{CartItemID: 1, ProductID: 1, Quantity: 2, Price: 5.00},
			},
			TotalItems: 2,
			TotalPrice: 10.00,
		},
	}

	handler := NewCartHandler(mock, 5*time.Second)
	reqBytes, _ := json.Marshal(&AddItemRequestDTO{ProductID: 1, Quantity: 2})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.TotalItems != 2 {
		t.Errorf("Expected total_items 2, got %d", response.TotalItems)
	}
}

func TestAddItem_DefaultsQuantityToOne(t *testing.T) {
	mock := cartServiceMock{cart: &domain.Cart{TotalItems: 1}}
	handler := NewCartHandler(mock, 5*time.Second)

	reqBytes, _ := json.Marshal(&AddItemRequestDTO{ProductID: 1})
	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}
}

func TestAddItem_InvalidJSON(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: &domain.Cart{}}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader([]byte("invalid json"))), "user-1")

	handler.AddItem(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_request" {
		t.Errorf("Expected error code 'invalid_request', got '%s'", response.Code)
	}
}

func TestAddItem_InvalidProductID(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: &domain.Cart{}}, 5*time.Second)

	tests := []struct {
		name      string
		productID int64
	}{
		{"zero product_id", 0},
		{"negative product_id", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBytes, _ := json.Marshal(&AddItemRequestDTO{ProductID: tt.productID, Quantity: 2})
			recorder := httptest.NewRecorder()
			request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

			handler.AddItem(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != "invalid_product_id" {
				t.Errorf("Expected error code 'invalid_product_id', got '%s'", response.Code)
			}
		})
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: &domain.Cart{}}, 5*time.Second)

	tests := []struct {
		name     string
		quantity int
	}{
		{"negative quantity", -1},
		{"quantity too high", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBytes, _ := json.Marshal(&AddItemRequestDTO{ProductID: 1, Quantity: tt.quantity})
			recorder := httptest.NewRecorder()
			request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

			handler.AddItem(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != "invalid_quantity" {
				t.Errorf("Expected error code 'invalid_quantity', got '%s'", response.Code)
			}
		})
	}
}

func TestAddItem_ServiceErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedHTTP int
		expectedCode string
	}{
		{"product not found", repository.ErrProductNotFound, http.StatusNotFound, "not_found"},
		{"unknown error", context.DeadlineExceeded, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCartHandler(cartServiceMock{err: tt.err}, 5*time.Second)

			reqBytes, _ := json.Marshal(&AddItemRequestDTO{ProductID: 1, Quantity: 2})
			recorder := httptest.NewRecorder()
			request := withUser(httptest.NewRequest("POST", "/items", bytes.NewReader(reqBytes)), "user-1")

			handler.AddItem(recorder, request)

			if recorder.Code != tt.expectedHTTP {
				t.Errorf("Expected status code %d, got %d", tt.expectedHTTP, recorder.Code)
			}

			var response ErrorResponse
			json.NewDecoder(recorder.Body).Decode(&response)
			if response.Code != tt.expectedCode {
				t.Errorf("Expected error code '%s', got '%s'", tt.expectedCode, response.Code)
			}
		})
	}
}

func TestUpdateQuantity_Success(t *testing.T) {
	mock := cartServiceMock{
		cart: &domain.Cart{
			Items: []domain.CartItem{
				{CartItemID: 1, ProductID: 1, Quantity: 10, Price: 5.00},
			},
			TotalItems: 10,
			TotalPrice: 50.00,
		},
	}

	handler := NewCartHandler(mock, 5*time.Second)
	reqBytes, _ := json.Marshal(&UpdateQuantityRequestDTO{Quantity: 10})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PUT", "/items/1", bytes.NewReader(reqBytes))
	request = withUser(request, "user-1")
	request = withItemID(request, "1")

	handler.UpdateQuantity(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Items[0].Quantity != 10 {
		t.Errorf("Expected quantity 10, got %d", response.Items[0].Quantity)
	}
}

func TestUpdateQuantity_ZeroIsAccepted(t *testing.T) {
	// Zero quantity reaches the service; removal is the server's policy.
	mock := cartServiceMock{
		cart: &domain.Cart{Items: []domain.CartItem{}, TotalItems: 0, TotalPrice: 0},
	}

	handler := NewCartHandler(mock, 5*time.Second)
	reqBytes, _ := json.Marshal(&UpdateQuantityRequestDTO{Quantity: 0})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PUT", "/items/1", bytes.NewReader(reqBytes))
	request = withUser(request, "user-1")
	request = withItemID(request, "1")

	handler.UpdateQuantity(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
}

func TestUpdateQuantity_InvalidItemID(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: &domain.Cart{}}, 5*time.Second)

	tests := []struct {
		name   string
		itemID string
	}{
		{"non-numeric item_id", "abc"},
		{"zero item_id", "0"},
		{"negative item_id", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqBytes, _ := json.Marshal(&UpdateQuantityRequestDTO{Quantity: 5})
			recorder := httptest.NewRecorder()
			request := httptest.NewRequest("PUT", "/items/"+tt.itemID, bytes.NewReader(reqBytes))
			request = withUser(request, "user-1")
			request = withItemID(request, tt.itemID)

			handler.UpdateQuantity(recorder, request)

			if recorder.Code != http.StatusBadRequest {
				t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
			}
		})
	}
}

func TestUpdateQuantity_StaleItem(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{err: repository.ErrItemNotFound}, 5*time.Second)

	reqBytes, _ := json.Marshal(&UpdateQuantityRequestDTO{Quantity: 5})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PUT", "/items/42", bytes.NewReader(reqBytes))
	request = withUser(request, "user-1")
	request = withItemID(request, "42")

	handler.UpdateQuantity(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Error == "" {
		t.Error("Expected non-empty error message")
	}
}

func TestRemoveItem_Success(t *testing.T) {
	mock := cartServiceMock{
		cart: &domain.Cart{Items: []domain.CartItem{}, TotalItems: 0, TotalPrice: 0},
	}

	handler := NewCartHandler(mock, 5*time.Second)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/items/1", nil)
	request = withUser(request, "user-1")
	request = withItemID(request, "1")

	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
}

func TestRemoveItem_Unauthorized(t *testing.T) {
	handler := NewCartHandler(cartServiceMock{cart: &domain.Cart{}}, 5*time.Second)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("DELETE", "/items/1", nil)
	request = withItemID(request, "1")
	// No user_id in context

	handler.RemoveItem(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}
