package cache

import (
	"context"
	"errors"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

type CartCache interface {
	Get(ctx context.Context, userID string, kind domain.CartKind) (*domain.StoredCart, error)
	Set(ctx context.Context, userID string, kind domain.CartKind, cart *domain.StoredCart) error
	Delete(ctx context.Context, userID string, kind domain.CartKind) error
}

var ErrCacheMiss = errors.New("cache miss")
