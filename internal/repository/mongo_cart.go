package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoCartRepository) GetCart(ctx context.Context, userID string, kind domain.CartKind) (*domain.StoredCart, error) {
	var cart domain.StoredCart

	filter := bson.M{"user_id": userID, "kind": kind}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

func (m *mongoCartRepository) AddProductItem(ctx context.Context, userID string, item domain.CartItem) (*domain.StoredCart, error) {
	cart, err := m.loadOrCreate(ctx, userID, domain.KindProductCart)
	if err != nil {
		return nil, err
	}

	// Same product twice merges into one line with a bumped quantity.
	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		item.CartItemID = cart.NextItemID
		cart.NextItemID++
		cart.Items = append(cart.Items, item)
	}

	if err := m.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *mongoCartRepository) UpdateProductQuantity(ctx context.Context, userID string, cartItemID int64, quantity int) (*domain.StoredCart, error) {
	cart, err := m.GetCart(ctx, userID, domain.KindProductCart)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].CartItemID != cartItemID {
			continue
		}
		found = true
		if quantity == 0 {
			// Zero quantity removes the line.
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
		break
	}
	if !found {
		return nil, ErrItemNotFound
	}

	if err := m.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *mongoCartRepository) AddSessionItem(ctx context.Context, userID string, item domain.SessionCartItem) (*domain.StoredCart, error) {
	cart, err := m.loadOrCreate(ctx, userID, domain.KindSessionCart)
	if err != nil {
		return nil, err
	}

	// At most one entry per session per user.
	for _, existing := range cart.Sessions {
		if existing.SessionID == item.SessionID {
			return nil, ErrSessionInCart
		}
	}

	item.CartItemID = cart.NextItemID
	cart.NextItemID++
	cart.Sessions = append(cart.Sessions, item)

	if err := m.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *mongoCartRepository) RemoveItem(ctx context.Context, userID string, kind domain.CartKind, cartItemID int64) (*domain.StoredCart, error) {
	cart, err := m.GetCart(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	found := false
	switch kind {
	case domain.KindProductCart:
		for i := range cart.Items {
			if cart.Items[i].CartItemID == cartItemID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				found = true
				break
			}
		}
	case domain.KindSessionCart:
		for i := range cart.Sessions {
			if cart.Sessions[i].CartItemID == cartItemID {
				cart.Sessions = append(cart.Sessions[:i], cart.Sessions[i+1:]...)
				found = true
				break
			}
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}

	if err := m.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *mongoCartRepository) DeleteCart(ctx context.Context, userID string, kind domain.CartKind) error {
	filter := bson.M{"user_id": userID, "kind": kind}

	result, err := m.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}

	return nil
}

func (m *mongoCartRepository) loadOrCreate(ctx context.Context, userID string, kind domain.CartKind) (*domain.StoredCart, error) {
	cart, err := m.GetCart(ctx, userID, kind)
	if errors.Is(err, ErrCartNotFound) {
		now := time.Now()
		return &domain.StoredCart{
			UserID:     userID,
			Kind:       kind,
			NextItemID: 1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (m *mongoCartRepository) save(ctx context.Context, cart *domain.StoredCart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	filter := bson.M{"user_id": cart.UserID, "kind": cart.Kind}
	update := bson.M{"$set": bson.M{
		"user_id":      cart.UserID,
		"kind":         cart.Kind,
		"items":        cart.Items,
		"sessions":     cart.Sessions,
		"next_item_id": cart.NextItemID,
		"created_at":   cart.CreatedAt,
		"updated_at":   cart.UpdatedAt,
	}}
	opts := options.Update().SetUpsert(true)

	if _, err := m.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	return nil
}

func (m *mongoCartRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "kind", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
