package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Mahmoud-ctrl/GymMang/internal/domain"
)

var (
	ErrCartNotFound           = errors.New("cart not found")
	ErrItemNotFound           = errors.New("item not found in cart")
	ErrSessionInCart          = errors.New("session already in cart")
	ErrProductNotFound        = errors.New("product not found")
	ErrEquipmentNotFound      = errors.New("equipment not found")
	ErrSessionNotFound        = errors.New("session not found")
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailTaken             = errors.New("email already registered")
	ErrBookingNotFound        = errors.New("booking not found")
	ErrDuplicateCheckout      = errors.New("checkout already exists for this key")
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
)

// CartRepository is defined here, consumer-side; the MongoDB implementation
// satisfies it. Every mutation returns the updated document so callers can
// build the authoritative snapshot without a second read.
type CartRepository interface {
	GetCart(ctx context.Context, userID string, kind domain.CartKind) (*domain.StoredCart, error)
	AddProductItem(ctx context.Context, userID string, item domain.CartItem) (*domain.StoredCart, error)
	UpdateProductQuantity(ctx context.Context, userID string, cartItemID int64, quantity int) (*domain.StoredCart, error)
	AddSessionItem(ctx context.Context, userID string, item domain.SessionCartItem) (*domain.StoredCart, error)
	RemoveItem(ctx context.Context, userID string, kind domain.CartKind, cartItemID int64) (*domain.StoredCart, error)
	DeleteCart(ctx context.Context, userID string, kind domain.CartKind) error
}

type CatalogRepository interface {
	ListProducts(ctx context.Context, f domain.ProductFilter) (*domain.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListProductCategories(ctx context.Context) ([]domain.Category, error)
	ListEquipments(ctx context.Context, f domain.EquipmentFilter) (*domain.EquipmentPage, error)
	GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error)
	ListEquipmentCategories(ctx context.Context) ([]domain.Category, error)
}

type SessionRepository interface {
	ListClassTypes(ctx context.Context) ([]domain.ClassType, error)
	CreateSession(ctx context.Context, trainerID string, s domain.NewSession) (*domain.Session, error)
	GetSession(ctx context.Context, id int64) (*domain.Session, error)
	ListAvailable(ctx context.Context, f domain.SessionFilter) ([]domain.Session, error)
	ListBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, userID string, bookingID int64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type OrderRepository interface {
	GetOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error)
	// CreateOrder persists the order, its session bookings and the outbox
	// event in a single transaction.
	CreateOrder(ctx context.Context, order *domain.Order, bookings []domain.Booking, event *domain.OutboxEvent) error
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetUnprocessedEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}
