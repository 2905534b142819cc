package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
)

var _ repo_interfaces.RateRepository = (*RateRepository)(nil)

// RateRepository serves the static directed rate table. The table is
// asymmetric on purpose: forward and reverse entries are independent
// quotes, not inverses.
type RateRepository struct{}

func NewRateRepository() *RateRepository {
	return &RateRepository{}
}

var staticRates = map[string]map[string]string{
	"USD": {"EUR": "0.85", "ILS": "3.5"},
	"EUR": {"USD": "1.18", "ILS": "4.1"},
	"ILS": {"USD": "0.29", "EUR": "0.24"},
}

func (r *RateRepository) GetRate(_ context.Context, fromCurrency string, toCurrency string) (domain.Rate, error) {
	byTarget, ok := staticRates[fromCurrency]
	if !ok {
		return domain.Rate{}, commons.ErrRecordNotFound
	}

	raw, ok := byTarget[toCurrency]
	if !ok {
		return domain.Rate{}, commons.ErrRecordNotFound
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.Rate{}, err
	}

	return domain.Rate{
		FromCurrency: fromCurrency,
		ToCurrency:   toCurrency,
		Rate:         rate,
	}, nil
}
