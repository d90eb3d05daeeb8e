package payment

import "context"

// Provider charges the member at checkout. Implementations must be safe to
// call with the same idempotency key more than once.
type Provider interface {
	Charge(ctx context.Context, amountCents int64, currency, idempotencyKey string) (string, error)
}
