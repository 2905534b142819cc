package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        string
	UserID    string
	Balance   decimal.Decimal
	Currency  string
	IsActive  bool
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}

// Closed accounts are tombstones: the row survives so transaction
// history keeps a valid back-reference, but every ledger operation
// treats the account as not found.
func (a Account) IsClosed() bool {
	return a.ClosedAt != nil
}
