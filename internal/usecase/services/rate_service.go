package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
	"github.com/api-sage/banking-ledger/internal/usecase/service_interfaces"
)

var _ service_interfaces.RateService = (*RateService)(nil)

type RateService struct {
	rateRepo repo_interfaces.RateRepository
}

func NewRateService(rateRepo repo_interfaces.RateRepository) *RateService {
	return &RateService{rateRepo: rateRepo}
}

// Convert applies the directed rate for (from, to). The table is
// deliberately asymmetric: reverse rates are stored independently and
// are not inverted here.
func (s *RateService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency string, toCurrency string) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	to := strings.ToUpper(strings.TrimSpace(toCurrency))

	if from == "" {
		return decimal.Decimal{}, fmt.Errorf("fromCurrency is required")
	}
	if to == "" {
		return decimal.Decimal{}, fmt.Errorf("toCurrency is required")
	}

	if from == to {
		return amount, nil
	}

	rate, err := s.rateRepo.GetRate(ctx, from, to)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			logger.Info("rate service conversion not supported", logger.Fields{
				"fromCurrency": from,
				"toCurrency":   to,
			})
			return decimal.Decimal{}, domain.ErrUnsupportedConversion
		}
		logger.Error("rate service get rate failed", err, logger.Fields{
			"fromCurrency": from,
			"toCurrency":   to,
		})
		return decimal.Decimal{}, fmt.Errorf("get rate: %w", err)
	}

	if rate.Rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("stored rate must be greater than zero")
	}

	return amount.Mul(rate.Rate), nil
}
