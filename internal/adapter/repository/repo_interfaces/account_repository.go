package repo_interfaces

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/domain"
)

// BalanceUpdate is an optimistic compare-and-set against one account
// row: the write only lands if the stored version still equals
// ExpectedVersion. A lost race surfaces as domain.ErrConcurrencyConflict.
type BalanceUpdate struct {
	AccountID       string
	ExpectedVersion int64
	NewBalance      decimal.Decimal
}

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// UpdateBalance applies one balance mutation and appends its
	// transaction record as a single atomic unit.
	UpdateBalance(ctx context.Context, update BalanceUpdate, transaction domain.Transaction) error

	// ApplyTransfer applies both legs of a transfer and appends both
	// transaction records atomically. Implementations touch the two
	// accounts in ascending account-id order so that opposite-direction
	// transfers cannot deadlock.
	ApplyTransfer(ctx context.Context, debit BalanceUpdate, credit BalanceUpdate, debitTransaction domain.Transaction, creditTransaction domain.Transaction) error

	SetActive(ctx context.Context, accountID string, expectedVersion int64, active bool) error
	Close(ctx context.Context, accountID string, expectedVersion int64) error
}
