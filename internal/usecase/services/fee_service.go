package services

import (
	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/usecase/service_interfaces"
)

var _ service_interfaces.FeeService = (*FeeService)(nil)

// FeeService assesses a flat percentage fee on every gross amount,
// with no minimum, maximum, or currency dependency.
type FeeService struct {
	feeRate decimal.Decimal
}

func NewFeeService(feeRate decimal.Decimal) *FeeService {
	return &FeeService{feeRate: feeRate}
}

// Fee rounds half away from zero at 2 decimal places, the same scale
// balances are persisted with.
func (s *FeeService) Fee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(s.feeRate).Round(2)
}
