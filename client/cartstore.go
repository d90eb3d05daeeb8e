package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

// CartStore mirrors the user's product cart. It owns its snapshot
// exclusively; every successful call replaces the whole snapshot with the
// server's response, never merging. On failure the prior snapshot stays
// untouched.
//
// Concurrent mutations are not serialized: whichever response lands last
// becomes the snapshot. Each response is a full consistent cart, so the
// worst case is transient staleness, not corruption. Surfaces should disable
// controls while Loading() reports true.
type CartStore struct {
	api *Client

	mu       sync.Mutex
	snapshot domain.Cart
	inflight int
}

func NewCartStore(api *Client) *CartStore {
	return &CartStore{
		api:      api,
		snapshot: domain.Cart{Items: []domain.CartItem{}},
	}
}

// Fetch refreshes the snapshot from the server.
func (s *CartStore) Fetch(ctx context.Context) Result {
	return s.call(ctx, "GET", "/api/cart", nil, fallbackFetch)
}

// Add puts quantity units of a product in the cart. Quantity must be
// positive; use AddOne for the common single-unit case.
func (s *CartStore) Add(ctx context.Context, productID int64, quantity int) Result {
	if quantity < 1 {
		return failure("quantity must be a positive integer")
	}
	body := map[string]interface{}{"product_id": productID, "quantity": quantity}
	return s.call(ctx, "POST", "/api/cart/items", body, fallbackAdd)
}

func (s *CartStore) AddOne(ctx context.Context, productID int64) Result {
	return s.Add(ctx, productID, 1)
}

// Update changes a line's quantity. Zero is sent as-is; the server decides
// whether that removes the line or rejects the request.
func (s *CartStore) Update(ctx context.Context, cartItemID int64, quantity int) Result {
	if quantity < 0 {
		return failure("quantity must not be negative")
	}
	body := map[string]interface{}{"quantity": quantity}
	path := fmt.Sprintf("/api/cart/items/%d", cartItemID)
	return s.call(ctx, "PUT", path, body, fallbackUpdate)
}

// Remove deletes a line. No existence check happens client-side; a stale id
// surfaces as the server's own rejection.
func (s *CartStore) Remove(ctx context.Context, cartItemID int64) Result {
	path := fmt.Sprintf("/api/cart/items/%d", cartItemID)
	return s.call(ctx, "DELETE", path, nil, fallbackRemove)
}

// Snapshot returns a deep copy of the current cart.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.snapshot)
}

// Loading reports whether any operation is in flight.
func (s *CartStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// call runs one round trip. The mutex is not held across the network hop.
func (s *CartStore) call(ctx context.Context, method, path string, body interface{}, fallback string) Result {
	s.begin()
	defer s.end()

	var fresh domain.Cart
	if err := s.api.do(ctx, method, path, body, &fresh); err != nil {
		return resultFromError(err, fallback)
	}

	s.mu.Lock()
	s.snapshot = fresh
	s.mu.Unlock()
	return ok()
}

func (s *CartStore) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *CartStore) end() {
	s.mu.Lock()
	s.inflight--
	s.mu.Unlock()
}

func copyCart(c domain.Cart) domain.Cart {
	out := domain.Cart{
		Items:      make([]domain.CartItem, len(c.Items)),
		TotalItems: c.TotalItems,
		TotalPrice: c.TotalPrice,
	}
	for i, it := range c.Items {
		images := make([]string, len(it.Images))
		copy(images, it.Images)
		it.Images = images
		out.Items[i] = it
	}
	return out
}
