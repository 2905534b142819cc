package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
)

var _ repo_interfaces.RateRepository = (*RateRepository)(nil)

type RateRepository struct {
	db *sql.DB
}

func NewRateRepository(db *sql.DB) *RateRepository {
	return &RateRepository{db: db}
}

// GetRate looks up the directed (from, to) entry only. Reverse entries
// are stored separately and never inverted.
func (r *RateRepository) GetRate(ctx context.Context, fromCurrency string, toCurrency string) (domain.Rate, error) {
	const query = `
SELECT id, from_currency, to_currency, rate, created_at
FROM rates
WHERE from_currency = $1 AND to_currency = $2
ORDER BY created_at DESC
LIMIT 1`

	var rate domain.Rate
	if err := r.db.QueryRowContext(ctx, query, fromCurrency, toCurrency).Scan(
		&rate.ID,
		&rate.FromCurrency,
		&rate.ToCurrency,
		&rate.Rate,
		&rate.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Rate{}, commons.ErrRecordNotFound
		}
		logger.Error("rate repository get failed", err, logger.Fields{
			"fromCurrency": fromCurrency,
			"toCurrency":   toCurrency,
		})
		return domain.Rate{}, fmt.Errorf("get rate: %w", err)
	}

	return rate, nil
}
