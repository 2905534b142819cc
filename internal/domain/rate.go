package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is a directed conversion entry. The table is asymmetric: the
// USD->ILS rate is not guaranteed to be the inverse of ILS->USD.
type Rate struct {
	ID           int64
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	CreatedAt    time.Time
}
