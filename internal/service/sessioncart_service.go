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

// SessionCartService owns the member's session cart. It enforces capacity at
// add time and the one-entry-per-session rule (via the repository).
type SessionCartService struct {
	repo     repository.CartRepository
	sessions repository.SessionRepository
	cache    cache.CartCache
	sfg      singleflight.Group
}

func NewSessionCartService(repo repository.CartRepository, sessions repository.SessionRepository, cache cache.CartCache) *SessionCartService {
	return &SessionCartService{
		repo:     repo,
		sessions: sessions,
		cache:    cache,
	}
}

func (s *SessionCartService) GetCart(ctx context.Context, userID string) (*domain.SessionCart, error) {
	v, err, _ := s.sfg.Do("session:"+userID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, userID, domain.KindSessionCart)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v \n", err)
		}

		cart, errGet := s.repo.GetCart(ctx, userID, domain.KindSessionCart)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			return &domain.StoredCart{
				UserID:     userID,
				Kind:       domain.KindSessionCart,
				NextItemID: 1,
				CreatedAt:  time.Now(),
				UpdatedAt:  time.Now(),
			}, nil
		}
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			errSet := s.cache.Set(context.Background(), userID, domain.KindSessionCart, cart)
			if errSet != nil {
				log.Printf("cache set error: %v \n", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.StoredCart).SessionSnapshot(), nil
}

// AddSession puts one seat of a scheduled session into the cart. The session
// must exist, must not be full, and must not already be in the cart.
func (s *SessionCartService) AddSession(ctx context.Context, userID string, sessionID int64) (*domain.SessionCart, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsFull {
		return nil, ErrSessionFull
	}

	item := domain.SessionCartItem{
		SessionID:   session.ID,
		ClassType:   session.ClassType,
		TrainerName: session.TrainerName,
		Date:        session.Date,
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
		Price:       session.Price,
	}

	stored, errAdd := s.repo.AddSessionItem(ctx, userID, item)
	if errAdd != nil {
		log.Printf("repo add session error: %v \n", errAdd)
		return nil, errAdd
	}

	s.invalidateCache(userID)
	return stored.SessionSnapshot(), nil
}

func (s *SessionCartService) RemoveItem(ctx context.Context, userID string, cartItemID int64) (*domain.SessionCart, error) {
	stored, errRemove := s.repo.RemoveItem(ctx, userID, domain.KindSessionCart, cartItemID)
	if errRemove != nil {
		log.Printf("repo remove session error: %v \n", errRemove)
		return nil, errRemove
	}

	s.invalidateCache(userID)
	return stored.SessionSnapshot(), nil
}

func (s *SessionCartService) ClearCart(ctx context.Context, userID string) error {
	errDelete := s.repo.DeleteCart(ctx, userID, domain.KindSessionCart)
	if errDelete != nil && !errors.Is(errDelete, repository.ErrCartNotFound) {
		log.Printf("repo delete session cart error: %v \n", errDelete)
		return errDelete
	}

	s.invalidateCache(userID)
	return nil
}

func (s *SessionCartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, userID, domain.KindSessionCart)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v \n", errInvalidate)
	}
}
