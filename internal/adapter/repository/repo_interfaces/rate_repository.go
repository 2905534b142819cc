package repo_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/internal/domain"
)

type RateRepository interface {
	GetRate(ctx context.Context, fromCurrency string, toCurrency string) (domain.Rate, error)
}
