package repo_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/internal/domain"
)

type TransactionRepository interface {
	// ListByAccountIDs returns transactions on the given accounts in
	// reverse-chronological order. A limit <= 0 means no limit.
	ListByAccountIDs(ctx context.Context, accountIDs []string, limit int) ([]domain.Transaction, error)
}
