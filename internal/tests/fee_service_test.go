package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/usecase/services"
)

func TestFeeServiceFlatRate(t *testing.T) {
	svc := services.NewFeeService(decimal.RequireFromString("0.01"))

	cases := []struct {
		amount string
		fee    string
	}{
		{"200", "2"},
		{"300", "3"},
		{"1", "0.01"},
		{"0.50", "0.01"},
		{"123.45", "1.23"},
	}

	for _, tc := range cases {
		fee := svc.Fee(decimal.RequireFromString(tc.amount))
		if !fee.Equal(decimal.RequireFromString(tc.fee)) {
			t.Fatalf("fee for %s: expected %s, got %s", tc.amount, tc.fee, fee.String())
		}
	}
}
