package service_interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

type RateService interface {
	// Convert maps an amount from one currency into another using the
	// directed rate table. Same-currency conversion is the identity.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string, toCurrency string) (decimal.Decimal, error)
}
