package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

// SessionCartStore mirrors the user's session cart. Same lifecycle as
// CartStore, no quantity concept: the server holds at most one entry per
// session and rejects duplicates.
type SessionCartStore struct {
	api *Client

	mu       sync.Mutex
	snapshot domain.SessionCart
	inflight int
}

func NewSessionCartStore(api *Client) *SessionCartStore {
	return &SessionCartStore{
		api:      api,
		snapshot: domain.SessionCart{Items: []domain.SessionCartItem{}},
	}
}

func (s *SessionCartStore) Fetch(ctx context.Context) Result {
	return s.call(ctx, "GET", "/api/session-cart", nil, fallbackFetch)
}

func (s *SessionCartStore) Add(ctx context.Context, sessionID int64) Result {
	body := map[string]interface{}{"session_id": sessionID}
	return s.call(ctx, "POST", "/api/session-cart/items", body, fallbackAdd)
}

func (s *SessionCartStore) Remove(ctx context.Context, cartItemID int64) Result {
	path := fmt.Sprintf("/api/session-cart/items/%d", cartItemID)
	return s.call(ctx, "DELETE", path, nil, fallbackRemove)
}

func (s *SessionCartStore) Snapshot() domain.SessionCart {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := domain.SessionCart{
		Items:      make([]domain.SessionCartItem, len(s.snapshot.Items)),
		TotalItems: s.snapshot.TotalItems,
		TotalPrice: s.snapshot.TotalPrice,
	}
	copy(out.Items, s.snapshot.Items)
	return out
}

func (s *SessionCartStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

func (s *SessionCartStore) call(ctx context.Context, method, path string, body interface{}, fallback string) Result {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	var fresh domain.SessionCart
	if err := s.api.do(ctx, method, path, body, &fresh); err != nil {
		return resultFromError(err, fallback)
	}

	s.mu.Lock()
	s.snapshot = fresh
	s.mu.Unlock()
	return ok()
}
