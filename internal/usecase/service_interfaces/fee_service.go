package service_interfaces

import "github.com/shopspring/decimal"

type FeeService interface {
	// Fee returns the fee assessed on a gross amount.
	Fee(amount decimal.Decimal) decimal.Decimal
}
