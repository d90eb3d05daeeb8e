package service

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Mahmoud-ctrl/GymMang/internal/cache"
	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
)

// CartService owns the member's product cart. Every mutation returns the full
// recomputed snapshot; totals are never left to the caller.
type CartService struct {
	repo    repository.CartRepository
	catalog repository.CatalogRepository
	cache   cache.CartCache
	sfg     singleflight.Group // Prevents cache stampede
}

func NewCartService(repo repository.CartRepository, catalog repository.CatalogRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
	}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	stored, err := s.getStored(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stored.ProductSnapshot(), nil
}

func (s *CartService) getStored(ctx context.Context, userID string) (*domain.StoredCart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do("product:"+userID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID, domain.KindProductCart)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, userID, domain.KindProductCart)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			// No document yet means an empty cart, not an error.
			return &domain.StoredCart{
				UserID:     userID,
				Kind:       domain.KindProductCart,
				NextItemID: 1,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), userID, domain.KindProductCart, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.StoredCart), nil
}

// AddItem resolves the product from the catalog and appends (or merges) a cart
// line priced at time of add. Returns repository.ErrProductNotFound when the
// catalog has no such active product.
func (s *CartService) AddItem(ctx context.Context, userID string, productID int64, quantity int) (*domain.Cart, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	item := domain.CartItem{
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.Price,
		Name:      product.Name,
		Images:    product.Images,
	}

	stored, errAdd := s.repo.AddProductItem(ctx, userID, item)
	if errAdd != nil {
		log.Printf("repo add item error: %v \n", errAdd)
		return nil, errAdd
	}

	s.invalidateCache(userID)
	return stored.ProductSnapshot(), nil
}

// UpdateQuantity sets a line's quantity. Zero removes the line; the caller
// only ever sees the resulting snapshot.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, cartItemID int64, quantity int) (*domain.Cart, error) {
	stored, errUpdate := s.repo.UpdateProductQuantity(ctx, userID, cartItemID, quantity)
	if errUpdate != nil {
		log.Printf("repo update item quantity error: %v \n", errUpdate)
		return nil, errUpdate
	}

	s.invalidateCache(userID)
	return stored.ProductSnapshot(), nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, cartItemID int64) (*domain.Cart, error) {
	stored, errRemove := s.repo.RemoveItem(ctx, userID, domain.KindProductCart, cartItemID)
	if errRemove != nil {
		log.Printf("repo remove item error: %v \n", errRemove)
		return nil, errRemove
	}

	s.invalidateCache(userID)
	return stored.ProductSnapshot(), nil
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	errDelete := s.repo.DeleteCart(ctx, userID, domain.KindProductCart)
	if errDelete != nil && !errors.Is(errDelete, repository.ErrCartNotFound) {
		log.Printf("repo delete cart error: %v \n", errDelete)
		return errDelete
	}

	s.invalidateCache(userID)
	return nil
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, userID, domain.KindProductCart)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
