package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

func newSessionTestStore(t *testing.T, handler http.HandlerFunc) *SessionCartStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := New(srv.URL, StaticTokenSource("test-token"), WithHTTPClient(srv.Client()))
	return NewSessionCartStore(api)
}

func TestSessionFetch_Idempotent(t *testing.T) {
	cart := domain.SessionCart{
		Items: []domain.SessionCartItem{
			{CartItemID: 1, SessionID: 42, ClassType: "Yoga", TrainerName: "Sam", Price: 15.00},
		},
		TotalItems: 1,
		TotalPrice: 15.00,
	}
	store := newSessionTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cart)
	})

	require.True(t, store.Fetch(context.Background()).Success)
	first := store.Snapshot()
	require.True(t, store.Fetch(context.Background()).Success)

	assert.Equal(t, first, store.Snapshot())
}

func TestSessionAdd_DuplicateRejected(t *testing.T) {
	// A cart already holding session 42: adding it again must fail and leave
	// the item count untouched.
	initial := domain.SessionCart{
		Items: []domain.SessionCartItem{
			{CartItemID: 1, SessionID: 42, ClassType: "Yoga", Price: 15.00},
		},
		TotalItems: 1,
		TotalPrice: 15.00,
	}

	store := newSessionTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(initial)
			return
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "Session already in your cart"})
	})

	require.True(t, store.Fetch(context.Background()).Success)

	res := store.Add(context.Background(), 42)
	assert.False(t, res.Success)
	assert.Equal(t, "Session already in your cart", res.Error)
	assert.Len(t, store.Snapshot().Items, 1)
}

func TestSessionAdd_FullReplacement(t *testing.T) {
	afterAdd := domain.SessionCart{
		Items: []domain.SessionCartItem{
			{CartItemID: 1, SessionID: 42, ClassType: "Yoga", Price: 15.00},
			{CartItemID: 2, SessionID: 43, ClassType: "HIIT", Price: 12.00},
		},
		TotalItems: 2,
		TotalPrice: 27.00,
	}
	store := newSessionTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(afterAdd)
	})

	res := store.Add(context.Background(), 43)
	require.True(t, res.Success)
	assert.Equal(t, afterAdd, store.Snapshot())
}

func TestSessionRemove_FailurePreservesState(t *testing.T) {
	initial := domain.SessionCart{
		Items: []domain.SessionCartItem{
			{CartItemID: 1, SessionID: 42, ClassType: "Yoga", Price: 15.00},
		},
		TotalItems: 1,
		TotalPrice: 15.00,
	}

	store := newSessionTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(initial)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Item not found in cart"})
	})

	require.True(t, store.Fetch(context.Background()).Success)
	before := store.Snapshot()

	res := store.Remove(context.Background(), 99)
	assert.False(t, res.Success)
	assert.Equal(t, "Item not found in cart", res.Error)
	assert.Equal(t, before, store.Snapshot())
}
