package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeProvider creates a confirmed PaymentIntent per checkout. Calls go
// through a circuit breaker so a Stripe outage fails checkouts fast instead
// of tying up request handlers.
type StripeProvider struct {
	breaker *gobreaker.CircuitBreaker[*stripe.PaymentIntent]
}

func NewStripeProvider(secretKey string) *StripeProvider {
	stripe.Key = secretKey

	settings := gobreaker.Settings{
		Name:    "stripe",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}

	return &StripeProvider{
		breaker: gobreaker.NewCircuitBreaker[*stripe.PaymentIntent](settings),
	}
}

func (p *StripeProvider) Charge(ctx context.Context, amountCents int64, currency, idempotencyKey string) (string, error) {
	intent, err := p.breaker.Execute(func() (*stripe.PaymentIntent, error) {
		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(amountCents),
			Currency: stripe.String(currency),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
		}
		params.Context = ctx
		params.SetIdempotencyKey(idempotencyKey)
		return paymentintent.New(params)
	})
	if err != nil {
		return "", fmt.Errorf("stripe charge failed: %w", err)
	}
	return intent.ID, nil
}
