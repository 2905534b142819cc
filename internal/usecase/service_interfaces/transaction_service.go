package service_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/commons"
)

type TransactionService interface {
	// ListUserTransactions returns transactions across all of the
	// caller's accounts, newest first. A limit <= 0 means no limit.
	ListUserTransactions(ctx context.Context, userID string, limit int) (commons.Response[[]models.TransactionResponse], error)
}
