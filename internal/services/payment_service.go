package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrInvalidPrice = errors.New("price must be a positive number")

// IntentCreator is the one processor call the payment bridge makes.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
}

type PaymentService struct {
	Processor IntentCreator
	Currency  string
}

func NewPaymentService(p IntentCreator, currency string) *PaymentService {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &PaymentService{Processor: p, Currency: currency}
}

// CreateIntent charges price (major units) in the configured currency and
// returns the processor's client secret untouched. No retry.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) || price*100 >= math.MaxInt64 {
		return "", ErrInvalidPrice
	}
	amount := MinorUnits(price)
	if amount < 1 {
		return "", ErrInvalidPrice
	}
	return s.Processor.CreateIntent(ctx, amount, s.Currency)
}

// MinorUnits converts a two-decimal amount, rounding away float error (19.99 -> 1999).
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// StripeGateway creates card payment intents through the Stripe API.
type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeGateway{api: sc}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}
