package cache

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	userID := "user123"

	cart := &domain.StoredCart{
		UserID: userID,
		Kind:   domain.KindProductCart,
		Items: []domain.CartItem{
			{CartItemID: 1, ProductID: 1, Quantity: 2},
			{CartItemID: 2, ProductID: 2, Quantity: 3},
		},
		NextItemID: 3,
	}

	cartJSON, _ := json.Marshal(cart)
	mr.Set(cacheKey(userID, domain.KindProductCart), string(cartJSON))

	result, err := cache.Get(ctx, userID, domain.KindProductCart)
	require.NoError(t, err)
	assert.Equal(t, userID, result.UserID)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(1), result.Items[0].ProductID)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background(), "nonexistent", domain.KindProductCart)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_KindsAreIsolated(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.StoredCart{
		UserID: "user123",
		Kind:   domain.KindSessionCart,
		Sessions: []domain.SessionCartItem{
			{CartItemID: 1, SessionID: 42},
		},
	}
	require.NoError(t, cache.Set(ctx, "user123", domain.KindSessionCart, cart))

	// The product cart key stays untouched.
	_, err := cache.Get(ctx, "user123", domain.KindProductCart)
	assert.ErrorIs(t, err, ErrCacheMiss)

	got, err := cache.Get(ctx, "user123", domain.KindSessionCart)
	require.NoError(t, err)
	assert.Len(t, got.Sessions, 1)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Set(cacheKey("user123", domain.KindProductCart), "not json")

	result, err := cache.Get(context.Background(), "user123", domain.KindProductCart)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestSet_RoundTrip(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.StoredCart{
		UserID: "user123",
		Kind:   domain.KindProductCart,
		Items: []domain.CartItem{
			{CartItemID: 1, ProductID: 10, Quantity: 5, Price: 9.99},
		},
		NextItemID: 2,
	}

	require.NoError(t, cache.Set(ctx, "user123", domain.KindProductCart, cart))
	assert.True(t, mr.Exists(cacheKey("user123", domain.KindProductCart)))

	got, err := cache.Get(ctx, "user123", domain.KindProductCart)
	require.NoError(t, err)
	assert.Equal(t, cart.Items, got.Items)

	// TTL is set with jitter somewhere above the base.
	ttl := mr.TTL(cacheKey("user123", domain.KindProductCart))
	assert.True(t, ttl > 0)
}

func TestDelete(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	cart := &domain.StoredCart{UserID: "user123", Kind: domain.KindProductCart}
	require.NoError(t, cache.Set(ctx, "user123", domain.KindProductCart, cart))

	require.NoError(t, cache.Delete(ctx, "user123", domain.KindProductCart))

	_, err := cache.Get(ctx, "user123", domain.KindProductCart)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete_MissingKeyIsNoop(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	assert.NoError(t, cache.Delete(context.Background(), "nonexistent", domain.KindProductCart))
}
