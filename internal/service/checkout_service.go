package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
	"github.com/Mahmoud-ctrl/GymMang/internal/payment"
	"github.com/Mahmoud-ctrl/GymMang/internal/repository"
)

// CheckoutService turns the two carts into a paid order plus confirmed
// bookings. The carts themselves are cleared asynchronously by the outbox
// consumer once the checkout-completed event lands on the broker.
type CheckoutService struct {
	carts    repository.CartRepository
	sessions repository.SessionRepository
	orders   repository.OrderRepository
	payments payment.Provider
}

func NewCheckoutService(
	carts repository.CartRepository,
	sessions repository.SessionRepository,
	orders repository.OrderRepository,
	payments payment.Provider,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		sessions: sessions,
		orders:   orders,
		payments: payments,
	}
}

func (s *CheckoutService) InitiateCheckout(ctx context.Context, userID, idempotencyKey string) (*domain.Order, error) {
	// check order by idempotency key from repository
	existing, err := s.orders.GetOrderByIdempotencyKey(ctx, idempotencyKey)
	if err != nil && !errors.Is(err, repository.ErrIdempotencyKeyNotFound) {
		return nil, fmt.Errorf("failed to check idempotency: %w", err)
	}
	if existing != nil {
		// Duplicate request: return the cached result.
		log.Printf("Duplicate checkout detected idempotency_key = %v with order_id = %v and status = %v",
			idempotencyKey, existing.ID, existing.Status)
		return existing, nil
	}

	items, bookings, total, err := s.snapshotCarts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Availability can change between add-to-cart and checkout; re-check
	// every session before taking the member's money.
	for _, b := range bookings {
		session, err := s.sessions.GetSession(ctx, b.SessionID)
		if err != nil {
			return nil, err
		}
		if session.IsFull {
			return nil, fmt.Errorf("%w: %s on %s", ErrSessionFull, session.ClassType, session.Date)
		}
	}

	amountCents := int64(math.Round(total * 100))
	if _, err := s.payments.Charge(ctx, amountCents, "usd", idempotencyKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	order := &domain.Order{
		ID:             uuid.New(),
		IdempotencyKey: idempotencyKey,
		UserID:         userID,
		TotalAmount:    total,
		Currency:       "usd",
		Status:         domain.CheckoutStatusCompleted,
		Items:          items,
	}

	payload, err := json.Marshal(map[string]string{
		"order_id": order.ID.String(),
		"user_id":  userID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal outbox payload: %w", err)
	}
	event := &domain.OutboxEvent{
		OrderID:   order.ID,
		UserID:    userID,
		EventType: "checkout-completed",
		Payload:   payload,
	}

	if errCreate := s.orders.CreateOrder(ctx, order, bookings, event); errCreate != nil {
		if errors.Is(errCreate, repository.ErrDuplicateCheckout) {
			// Lost the race against a concurrent duplicate; serve its result.
			return s.orders.GetOrderByIdempotencyKey(ctx, idempotencyKey)
		}
		return nil, errCreate
	}

	return order, nil
}

func (s *CheckoutService) snapshotCarts(ctx context.Context, userID string) ([]domain.OrderSnapshotItem, []domain.Booking, float64, error) {
	items := []domain.OrderSnapshotItem{}
	bookings := []domain.Booking{}
	var total float64

	productCart, err := s.carts.GetCart(ctx, userID, domain.KindProductCart)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, nil, 0, err
	}
	if productCart != nil {
		for _, it := range productCart.Items {
			subtotal := it.Price * float64(it.Quantity)
			items = append(items, domain.OrderSnapshotItem{
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: it.Price,
				Subtotal:  subtotal,
			})
			total += subtotal
		}
	}

	sessionCart, err := s.carts.GetCart(ctx, userID, domain.KindSessionCart)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, nil, 0, err
	}
	if sessionCart != nil {
		for _, it := range sessionCart.Sessions {
			items = append(items, domain.OrderSnapshotItem{
				SessionID: it.SessionID,
				Name:      it.ClassType,
				Quantity:  1,
				UnitPrice: it.Price,
				Subtotal:  it.Price,
			})
			bookings = append(bookings, domain.Booking{
				UserID:    userID,
				SessionID: it.SessionID,
				Price:     it.Price,
			})
			total += it.Price
		}
	}

	return items, bookings, total, nil
}
