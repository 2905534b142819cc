package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
	"github.com/api-sage/banking-ledger/internal/usecase/service_interfaces"
)

var _ service_interfaces.TransactionService = (*TransactionService)(nil)

// TransactionService is the read-side projection over recorded
// transactions. It never mutates anything.
type TransactionService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
}

func NewTransactionService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
) *TransactionService {
	return &TransactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *TransactionService) ListUserTransactions(ctx context.Context, userID string, limit int) (commons.Response[[]models.TransactionResponse], error) {
	logger.Info("transaction service list request", logger.Fields{
		"userId": userID,
		"limit":  limit,
	})

	if strings.TrimSpace(userID) == "" {
		err := fmt.Errorf("userId is required")
		return commons.ErrorResponse[[]models.TransactionResponse]("validation failed", err.Error()), err
	}

	accounts, err := s.accountRepo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		logger.Error("transaction service list accounts failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	accountIDs := make([]string, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.ID)
	}

	transactions := []domain.Transaction{}
	if len(accountIDs) > 0 {
		transactions, err = s.transactionRepo.ListByAccountIDs(ctx, accountIDs, limit)
		if err != nil {
			logger.Error("transaction service list transactions failed", err, logger.Fields{
				"userId": userID,
			})
			return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to fetch transactions right now"), err
		}
	}

	resp := make([]models.TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		resp = append(resp, models.TransactionResponse{
			ID:              transaction.ID,
			AccountID:       transaction.AccountID,
			Amount:          transaction.Amount.StringFixed(2),
			TransactionType: string(transaction.TransactionType),
			Currency:        transaction.Currency,
			Timestamp:       transaction.Timestamp.Format(time.RFC3339),
		})
	}

	logger.Info("transaction service list success", logger.Fields{
		"userId": userID,
		"count":  len(resp),
	})

	return commons.SuccessResponse("transactions fetched successfully", resp), nil
}
