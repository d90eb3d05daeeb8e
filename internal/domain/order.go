package domain

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutStatus string

const (
	CheckoutStatusInitiated        CheckoutStatus = "INITIATED"
	CheckoutStatusPaymentCompleted CheckoutStatus = "PAYMENT_COMPLETED"
	CheckoutStatusCompleted        CheckoutStatus = "COMPLETED"
	CheckoutStatusFailed           CheckoutStatus = "FAILED"
)

func (s CheckoutStatus) IsTerminal() bool {
	return s == CheckoutStatusCompleted || s == CheckoutStatusFailed
}

func (s CheckoutStatus) String() string {
	return string(s)
}

// OrderSnapshotItem captures one cart line at checkout time. SessionID is zero
// for product lines and ProductID is zero for session lines.
type OrderSnapshotItem struct {
	ProductID int64   `json:"product_id,omitempty"`
	SessionID int64   `json:"session_id,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type Order struct {
	ID             uuid.UUID           `json:"id"`
	IdempotencyKey string              `json:"-"`
	UserID         string              `json:"user_id"`
	TotalAmount    float64             `json:"total_amount"`
	Currency       string              `json:"currency"`
	Status         CheckoutStatus      `json:"status"`
	Items          []OrderSnapshotItem `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// Booking is a member's confirmed seat in a session, created when checkout
// completes for a session-cart line.
type Booking struct {
	ID          int64   `json:"id"`
	UserID      string  `json:"user_id"`
	SessionID   int64   `json:"session_id"`
	ClassType   string  `json:"class_type"`
	TrainerName string  `json:"trainer_name"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
}

// OutboxEvent is a pending integration event persisted in the same transaction
// as the order it belongs to.
type OutboxEvent struct {
	ID        int64
	OrderID   uuid.UUID
	UserID    string
	EventType string
	Payload   []byte
	CreatedAt time.Time
}
