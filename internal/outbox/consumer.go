package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/Mahmoud-ctrl/GymMang/internal/cache"
	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
)

// Consumer empties both of a member's carts once their checkout completes.
// Clearing an already-empty cart is a no-op, which makes redelivery safe.
type Consumer struct {
	carts  repository.CartRepository
	cache  cache.CartCache
	reader *kafka.Reader
}

func NewConsumer(carts repository.CartRepository, cache cache.CartCache, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    Topic,
		GroupID:  "cart-clearing-consumer",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{carts, cache, reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.readAndClearCarts(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("error closing reader: %v", err)
	}
}

func (c *Consumer) readAndClearCarts(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		log.Printf("error reading message: %v", err)
		return
	}

	var payload map[string]interface{}
	if errUnMarshal := json.Unmarshal(m.Value, &payload); errUnMarshal != nil {
		log.Printf("error parsing message: %v", errUnMarshal)
		return
	}
	userID, ok := payload["user_id"].(string)
	if !ok {
		log.Println("missing or invalid user_id")
		return
	}

	for _, kind := range []domain.CartKind{domain.KindProductCart, domain.KindSessionCart} {
		errDelete := c.carts.DeleteCart(ctx, userID, kind)
		if errDelete != nil && !errors.Is(errDelete, repository.ErrCartNotFound) {
			log.Printf("failed to delete %s cart: %v", kind, errDelete)
		}

		errCacheDelete := c.cache.Delete(ctx, userID, kind)
		if errCacheDelete != nil {
			log.Printf("failed to delete %s cart cache: %v", kind, errCacheDelete)
		}
	}
}
