package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeWithdraw TransactionType = "withdraw"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Transaction rows are append-only. Amount is the net value applied to
// the account balance, expressed in the account's own currency.
type Transaction struct {
	ID              string
	AccountID       string
	Amount          decimal.Decimal
	TransactionType TransactionType
	Currency        string
	Timestamp       time.Time
}
