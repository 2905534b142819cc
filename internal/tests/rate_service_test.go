package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/usecase/services"
)

func TestRateServiceConvertSameCurrency(t *testing.T) {
	svc := services.NewRateService(memory.NewRateRepository())

	converted, err := svc.Convert(context.Background(), decimal.NewFromInt(200), "USD", "USD")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !converted.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected 200, got %s", converted.String())
	}
}

func TestRateServiceConvertUsesDirectedRate(t *testing.T) {
	svc := services.NewRateService(memory.NewRateRepository())

	forward, err := svc.Convert(context.Background(), decimal.NewFromInt(100), "USD", "ILS")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !forward.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("expected 350, got %s", forward.String())
	}

	// The reverse entry is an independent quote, not the inverse.
	reverse, err := svc.Convert(context.Background(), decimal.NewFromInt(100), "ILS", "USD")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !reverse.Equal(decimal.NewFromInt(29)) {
		t.Fatalf("expected 29, got %s", reverse.String())
	}
}

func TestRateServiceConvertUnsupportedPair(t *testing.T) {
	svc := services.NewRateService(memory.NewRateRepository())

	_, err := svc.Convert(context.Background(), decimal.NewFromInt(100), "USD", "GBP")
	if !errors.Is(err, domain.ErrUnsupportedConversion) {
		t.Fatalf("expected ErrUnsupportedConversion, got %v", err)
	}

	_, err = svc.Convert(context.Background(), decimal.NewFromInt(100), "GBP", "USD")
	if !errors.Is(err, domain.ErrUnsupportedConversion) {
		t.Fatalf("expected ErrUnsupportedConversion, got %v", err)
	}
}
