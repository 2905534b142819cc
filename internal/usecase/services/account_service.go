package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
	"github.com/api-sage/banking-ledger/internal/usecase/service_interfaces"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewAccountService(accountRepo repo_interfaces.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// CreateAccount opens a zero-balance account for the authenticated
// caller. The currency is fixed for the life of the account.
func (s *AccountService) CreateAccount(ctx context.Context, userID string, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if strings.TrimSpace(userID) == "" {
		err := fmt.Errorf("userId is required")
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	account := domain.Account{
		ID:       uuid.NewString(),
		UserID:   strings.TrimSpace(userID),
		Balance:  decimal.Zero,
		Currency: strings.ToUpper(strings.TrimSpace(req.Currency)),
		IsActive: true,
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"userId": account.UserID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	response := mapAccountToResponse(created)

	logger.Info("account service create account success", logger.Fields{
		"accountId": response.ID,
		"userId":    response.UserID,
		"currency":  response.Currency,
	})

	return commons.SuccessResponse("account created successfully", response), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, userID string) (commons.Response[[]models.AccountResponse], error) {
	logger.Info("account service list accounts request", logger.Fields{
		"userId": userID,
	})

	if strings.TrimSpace(userID) == "" {
		err := fmt.Errorf("userId is required")
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error()), err
	}

	accounts, err := s.accountRepo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		logger.Error("account service list accounts failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	resp := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		resp = append(resp, mapAccountToResponse(account))
	}

	logger.Info("account service list accounts success", logger.Fields{
		"userId": userID,
		"count":  len(resp),
	})

	return commons.SuccessResponse("accounts fetched successfully", resp), nil
}

func mapAccountToResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:        account.ID,
		UserID:    account.UserID,
		Balance:   account.Balance.StringFixed(2),
		Currency:  account.Currency,
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.Format(time.RFC3339),
	}
}
