package services_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"kidzplay/internal/services"
)

type recordingProcessor struct {
	calls    int
	amount   int64
	currency string
	err      error
}

func (r *recordingProcessor) CreateIntent(_ context.Context, amount int64, currency string) (string, error) {
	r.calls++
	r.amount, r.currency = amount, currency
	if r.err != nil {
		return "", r.err
	}
	return "pi_1_secret_abc", nil
}

func TestCreateIntentConvertsToMinorUnits(t *testing.T) {
	p := &recordingProcessor{}
	svc := services.NewPaymentService(p, "usd")

	secret, err := svc.CreateIntent(context.Background(), 19.99)
	if err != nil {
		t.Fatal(err)
	}
	if secret != "pi_1_secret_abc" {
		t.Fatalf("secret altered: %q", secret)
	}
	if p.amount != 1999 || p.currency != "usd" {
		t.Fatalf("processor got %d %s", p.amount, p.currency)
	}
}

func TestMinorUnits(t *testing.T) {
	for price, want := range map[float64]int64{0.01: 1, 1: 100, 19.99: 1999, 0.29: 29, 1234.56: 123456} {
		if got := services.MinorUnits(price); got != want {
			t.Errorf("MinorUnits(%v) = %d, want %d", price, got, want)
		}
	}
}

func TestCreateIntentRejectsBadPrices(t *testing.T) {
	p := &recordingProcessor{}
	svc := services.NewPaymentService(p, "")
	for _, price := range []float64{0, -1, 0.004, 1e20, math.MaxFloat64, math.NaN(), math.Inf(1)} {
		if _, err := svc.CreateIntent(context.Background(), price); !errors.Is(err, services.ErrInvalidPrice) {
			t.Fatalf("price %v: want ErrInvalidPrice, got %v", price, err)
		}
	}
	if p.calls != 0 {
		t.Fatalf("processor called %d times", p.calls)
	}
	if svc.Currency != "usd" {
		t.Fatalf("default currency = %q", svc.Currency)
	}
}

func TestCreateIntentPropagatesProcessorError(t *testing.T) {
	boom := errors.New("processor unavailable")
	p := &recordingProcessor{err: boom}
	svc := services.NewPaymentService(p, "eur")
	if _, err := svc.CreateIntent(context.Background(), 5); !errors.Is(err, boom) {
		t.Fatalf("want processor error, got %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("want exactly one call, got %d", p.calls)
	}
}
