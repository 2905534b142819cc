package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Loan struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	IsPaid    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
