package services

import (
	"context"
	"errors"
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

var _ service_interfaces.LedgerService = (*LedgerService)(nil)

// maxWriteAttempts bounds the optimistic-lock retry loop. After this
// many lost races the caller gets ErrConcurrencyConflict and may retry.
const maxWriteAttempts = 5

// LedgerService owns every balance-mutating invariant: fee assessment,
// currency conversion, the overdraft floor, and atomicity of the
// validate-then-apply sequence. A rejected operation never mutates a
// balance or writes a transaction.
type LedgerService struct {
	accountRepo repo_interfaces.AccountRepository
	rateService service_interfaces.RateService
	feeService  service_interfaces.FeeService

	overdraftFloor decimal.Decimal

	// strictTransferConversion enables the corrected transfer posting:
	// overdraft checked against the converted fee-inclusive debit, and
	// the destination credited the converted amount. The default keeps
	// the source system's behavior (gross-amount check, nominal credit).
	strictTransferConversion bool
}

func NewLedgerService(
	accountRepo repo_interfaces.AccountRepository,
	rateService service_interfaces.RateService,
	feeService service_interfaces.FeeService,
	overdraftFloor decimal.Decimal,
	strictTransferConversion bool,
) *LedgerService {
	return &LedgerService{
		accountRepo:              accountRepo,
		rateService:              rateService,
		feeService:               feeService,
		overdraftFloor:           overdraftFloor,
		strictTransferConversion: strictTransferConversion,
	}
}

func (s *LedgerService) Deposit(ctx context.Context, req models.DepositFundsRequest) (commons.Response[models.DepositFundsResponse], error) {
	logger.Info("ledger service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service deposit validation failed", err, nil)
		return commons.ErrorResponse[models.DepositFundsResponse]("validation failed", err.Error()), err
	}

	accountID := strings.TrimSpace(req.AccountID)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	if amount.LessThanOrEqual(decimal.Zero) {
		return commons.ErrorResponse[models.DepositFundsResponse]("validation failed", "Deposit amount must be greater than zero."), domain.ErrInvalidAmount
	}

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		account, err := s.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return mapAccountFetchError[models.DepositFundsResponse](err, accountID, "deposit")
		}

		fee := s.feeService.Fee(amount)
		net := amount.Sub(fee)
		if net.LessThanOrEqual(decimal.Zero) {
			return commons.ErrorResponse[models.DepositFundsResponse]("validation failed", "Deposit amount after fee must be greater than zero."), domain.ErrInvalidAmount
		}

		if currency != "" && currency != account.Currency {
			net, err = s.rateService.Convert(ctx, net, currency, account.Currency)
			if err != nil {
				return mapConversionError[models.DepositFundsResponse](err, "deposit")
			}
		}
		net = net.Round(2)

		newBalance := account.Balance.Add(net).Round(2)
		transaction := domain.Transaction{
			ID:              uuid.NewString(),
			AccountID:       account.ID,
			Amount:          net,
			TransactionType: domain.TransactionTypeDeposit,
			Currency:        account.Currency,
			Timestamp:       time.Now().UTC(),
		}

		err = s.accountRepo.UpdateBalance(ctx, repo_interfaces.BalanceUpdate{
			AccountID:       account.ID,
			ExpectedVersion: account.Version,
			NewBalance:      newBalance,
		}, transaction)
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			continue
		}
		if err != nil {
			return mapAccountWriteError[models.DepositFundsResponse](err, accountID, "deposit")
		}

		response := models.DepositFundsResponse{
			AccountID:     account.ID,
			Balance:       newBalance.StringFixed(2),
			Currency:      account.Currency,
			NetAmount:     net.StringFixed(2),
			Fee:           fee.StringFixed(2),
			TransactionID: transaction.ID,
		}

		logger.Info("ledger service deposit success", logger.Fields{
			"accountId":     response.AccountID,
			"netAmount":     response.NetAmount,
			"balance":       response.Balance,
			"transactionId": response.TransactionID,
		})

		return commons.SuccessResponse("Deposit successful!", response), nil
	}

	return conflictResponse[models.DepositFundsResponse](accountID, "deposit")
}

func (s *LedgerService) Withdraw(ctx context.Context, req models.WithdrawFundsRequest) (commons.Response[models.WithdrawFundsResponse], error) {
	logger.Info("ledger service withdraw request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service withdraw validation failed", err, nil)
		return commons.ErrorResponse[models.WithdrawFundsResponse]("validation failed", err.Error()), err
	}

	accountID := strings.TrimSpace(req.AccountID)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	if amount.LessThanOrEqual(decimal.Zero) {
		return commons.ErrorResponse[models.WithdrawFundsResponse]("validation failed", "Withdrawal amount must be greater than zero."), domain.ErrInvalidAmount
	}

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		account, err := s.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return mapAccountFetchError[models.WithdrawFundsResponse](err, accountID, "withdraw")
		}

		// The fee is added to the debit rather than subtracted from it,
		// mirroring the source system's asymmetry with deposits.
		fee := s.feeService.Fee(amount)
		net := amount.Add(fee)
		if net.LessThanOrEqual(decimal.Zero) {
			return commons.ErrorResponse[models.WithdrawFundsResponse]("validation failed", "Withdrawal amount after fee must be greater than zero."), domain.ErrInvalidAmount
		}

		if currency != "" && currency != account.Currency {
			net, err = s.rateService.Convert(ctx, net, currency, account.Currency)
			if err != nil {
				return mapConversionError[models.WithdrawFundsResponse](err, "withdraw")
			}
		}
		net = net.Round(2)

		if account.Balance.Sub(net).LessThan(s.overdraftFloor) {
			logger.Info("ledger service withdraw rejected", logger.Fields{
				"accountId": account.ID,
				"balance":   account.Balance.StringFixed(2),
				"debit":     net.StringFixed(2),
			})
			return commons.ErrorResponse[models.WithdrawFundsResponse]("Insufficient funds", "Insufficient funds for withdrawal."), domain.ErrInsufficientFunds
		}

		newBalance := account.Balance.Sub(net).Round(2)
		transaction := domain.Transaction{
			ID:              uuid.NewString(),
			AccountID:       account.ID,
			Amount:          net,
			TransactionType: domain.TransactionTypeWithdraw,
			Currency:        account.Currency,
			Timestamp:       time.Now().UTC(),
		}

		err = s.accountRepo.UpdateBalance(ctx, repo_interfaces.BalanceUpdate{
			AccountID:       account.ID,
			ExpectedVersion: account.Version,
			NewBalance:      newBalance,
		}, transaction)
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			continue
		}
		if err != nil {
			return mapAccountWriteError[models.WithdrawFundsResponse](err, accountID, "withdraw")
		}

		response := models.WithdrawFundsResponse{
			AccountID:     account.ID,
			Balance:       newBalance.StringFixed(2),
			Currency:      account.Currency,
			NetAmount:     net.StringFixed(2),
			Fee:           fee.StringFixed(2),
			TransactionID: transaction.ID,
		}

		logger.Info("ledger service withdraw success", logger.Fields{
			"accountId":     response.AccountID,
			"netAmount":     response.NetAmount,
			"balance":       response.Balance,
			"transactionId": response.TransactionID,
		})

		return commons.SuccessResponse("Withdrawal successful", response), nil
	}

	return conflictResponse[models.WithdrawFundsResponse](accountID, "withdraw")
}

func (s *LedgerService) Transfer(ctx context.Context, req models.TransferFundsRequest) (commons.Response[models.TransferFundsResponse], error) {
	logger.Info("ledger service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("ledger service transfer validation failed", err, nil)
		return commons.ErrorResponse[models.TransferFundsResponse]("validation failed", err.Error()), err
	}

	fromID := strings.TrimSpace(req.FromAccountID)
	toID := strings.TrimSpace(req.ToAccountID)
	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))

	if amount.LessThanOrEqual(decimal.Zero) {
		return commons.ErrorResponse[models.TransferFundsResponse]("validation failed", "Transfer amount must be greater than zero."), domain.ErrInvalidAmount
	}

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		fromAccount, err := s.accountRepo.GetByID(ctx, fromID)
		if err != nil {
			return mapAccountFetchError[models.TransferFundsResponse](err, fromID, "transfer")
		}
		toAccount, err := s.accountRepo.GetByID(ctx, toID)
		if err != nil {
			return mapAccountFetchError[models.TransferFundsResponse](err, toID, "transfer")
		}

		fee := s.feeService.Fee(amount)
		netDebit := amount.Add(fee)
		if netDebit.LessThanOrEqual(decimal.Zero) {
			return commons.ErrorResponse[models.TransferFundsResponse]("validation failed", "Transfer amount after fee must be greater than zero."), domain.ErrInvalidAmount
		}

		if currency != fromAccount.Currency {
			netDebit, err = s.rateService.Convert(ctx, netDebit, currency, fromAccount.Currency)
			if err != nil {
				return mapConversionError[models.TransferFundsResponse](err, "transfer")
			}
		}
		netDebit = netDebit.Round(2)

		// Default behavior keeps two source-system inconsistencies: the
		// overdraft check uses the gross amount while the debit is the
		// fee-inclusive net, and the destination is credited the nominal
		// amount with no conversion. Strict mode corrects both.
		creditAmount := amount
		overdraftDebit := amount
		if s.strictTransferConversion {
			overdraftDebit = netDebit
			if currency != toAccount.Currency {
				creditAmount, err = s.rateService.Convert(ctx, amount, currency, toAccount.Currency)
				if err != nil {
					return mapConversionError[models.TransferFundsResponse](err, "transfer")
				}
			}
		}
		creditAmount = creditAmount.Round(2)

		if fromAccount.Balance.Sub(overdraftDebit).LessThan(s.overdraftFloor) {
			logger.Info("ledger service transfer rejected", logger.Fields{
				"fromAccountId": fromAccount.ID,
				"balance":       fromAccount.Balance.StringFixed(2),
				"amount":        amount.StringFixed(2),
			})
			return commons.ErrorResponse[models.TransferFundsResponse]("Insufficient funds", "Insufficient funds for transfer."), domain.ErrInsufficientFunds
		}

		fromBalance := fromAccount.Balance.Sub(netDebit).Round(2)
		toBalance := toAccount.Balance.Add(creditAmount).Round(2)

		now := time.Now().UTC()
		debitTransaction := domain.Transaction{
			ID:              uuid.NewString(),
			AccountID:       fromAccount.ID,
			Amount:          netDebit,
			TransactionType: domain.TransactionTypeTransfer,
			Currency:        fromAccount.Currency,
			Timestamp:       now,
		}
		creditTransaction := domain.Transaction{
			ID:              uuid.NewString(),
			AccountID:       toAccount.ID,
			Amount:          creditAmount,
			TransactionType: domain.TransactionTypeTransfer,
			Currency:        toAccount.Currency,
			Timestamp:       now,
		}

		err = s.accountRepo.ApplyTransfer(
			ctx,
			repo_interfaces.BalanceUpdate{
				AccountID:       fromAccount.ID,
				ExpectedVersion: fromAccount.Version,
				NewBalance:      fromBalance,
			},
			repo_interfaces.BalanceUpdate{
				AccountID:       toAccount.ID,
				ExpectedVersion: toAccount.Version,
				NewBalance:      toBalance,
			},
			debitTransaction,
			creditTransaction,
		)
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			continue
		}
		if err != nil {
			return mapAccountWriteError[models.TransferFundsResponse](err, fromID, "transfer")
		}

		response := models.TransferFundsResponse{
			FromAccountID: fromAccount.ID,
			ToAccountID:   toAccount.ID,
			FromBalance:   fromBalance.StringFixed(2),
			ToBalance:     toBalance.StringFixed(2),
			DebitAmount:   netDebit.StringFixed(2),
			CreditAmount:  creditAmount.StringFixed(2),
			Fee:           fee.StringFixed(2),
		}

		logger.Info("ledger service transfer success", logger.Fields{
			"fromAccountId": response.FromAccountID,
			"toAccountId":   response.ToAccountID,
			"debitAmount":   response.DebitAmount,
			"creditAmount":  response.CreditAmount,
		})

		return commons.SuccessResponse("Transfer successful", response), nil
	}

	return conflictResponse[models.TransferFundsResponse](fromID, "transfer")
}

func (s *LedgerService) Suspend(ctx context.Context, req models.SuspendAccountRequest) (commons.Response[models.SuspendAccountResponse], error) {
	logger.Info("ledger service suspend request", logger.Fields{
		"accountId": req.AccountID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.SuspendAccountResponse]("validation failed", err.Error()), err
	}

	accountID := strings.TrimSpace(req.AccountID)

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		account, err := s.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return mapAccountFetchError[models.SuspendAccountResponse](err, accountID, "suspend")
		}

		// Suspending an already-suspended account succeeds silently.
		if !account.IsActive {
			return commons.SuccessResponse("Account suspended", models.SuspendAccountResponse{
				AccountID: account.ID,
				IsActive:  false,
			}), nil
		}

		err = s.accountRepo.SetActive(ctx, account.ID, account.Version, false)
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			continue
		}
		if err != nil {
			return mapAccountWriteError[models.SuspendAccountResponse](err, accountID, "suspend")
		}

		logger.Info("ledger service suspend success", logger.Fields{
			"accountId": account.ID,
		})

		return commons.SuccessResponse("Account suspended", models.SuspendAccountResponse{
			AccountID: account.ID,
			IsActive:  false,
		}), nil
	}

	return conflictResponse[models.SuspendAccountResponse](accountID, "suspend")
}

func (s *LedgerService) Close(ctx context.Context, req models.CloseAccountRequest) (commons.Response[models.CloseAccountResponse], error) {
	logger.Info("ledger service close request", logger.Fields{
		"accountId": req.AccountID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CloseAccountResponse]("validation failed", err.Error()), err
	}

	accountID := strings.TrimSpace(req.AccountID)

	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		account, err := s.accountRepo.GetByID(ctx, accountID)
		if err != nil {
			return mapAccountFetchError[models.CloseAccountResponse](err, accountID, "close")
		}

		if account.Balance.LessThan(decimal.Zero) {
			return commons.ErrorResponse[models.CloseAccountResponse]("validation failed", "Cannot close account with a negative balance."), domain.ErrNegativeBalance
		}

		err = s.accountRepo.Close(ctx, account.ID, account.Version)
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			continue
		}
		if err != nil {
			return mapAccountWriteError[models.CloseAccountResponse](err, accountID, "close")
		}

		logger.Info("ledger service close success", logger.Fields{
			"accountId": account.ID,
		})

		return commons.SuccessResponse("Account closed", models.CloseAccountResponse{
			AccountID: account.ID,
			ClosedAt:  time.Now().UTC().Format(time.RFC3339),
		}), nil
	}

	return conflictResponse[models.CloseAccountResponse](accountID, "close")
}

func mapAccountFetchError[T any](err error, accountID string, operation string) (commons.Response[T], error) {
	if errors.Is(err, commons.ErrRecordNotFound) || errors.Is(err, domain.ErrAccountNotFound) {
		logger.Info("ledger service account not found", logger.Fields{
			"accountId": accountID,
			"operation": operation,
		})
		return commons.ErrorResponse[T]("Account not found"), domain.ErrAccountNotFound
	}

	logger.Error("ledger service account fetch failed", err, logger.Fields{
		"accountId": accountID,
		"operation": operation,
	})
	return commons.ErrorResponse[T]("failed to process "+operation, "Unable to process request right now"), err
}

func mapAccountWriteError[T any](err error, accountID string, operation string) (commons.Response[T], error) {
	if errors.Is(err, commons.ErrRecordNotFound) || errors.Is(err, domain.ErrAccountNotFound) {
		return commons.ErrorResponse[T]("Account not found"), domain.ErrAccountNotFound
	}

	logger.Error("ledger service account write failed", err, logger.Fields{
		"accountId": accountID,
		"operation": operation,
	})
	return commons.ErrorResponse[T]("failed to process "+operation, "Unable to process request right now"), err
}

func mapConversionError[T any](err error, operation string) (commons.Response[T], error) {
	if errors.Is(err, domain.ErrUnsupportedConversion) {
		return commons.ErrorResponse[T]("validation failed", domain.ErrUnsupportedConversion.Error()), domain.ErrUnsupportedConversion
	}

	logger.Error("ledger service conversion failed", err, logger.Fields{
		"operation": operation,
	})
	return commons.ErrorResponse[T]("failed to process "+operation, "Unable to process request right now"), err
}

func conflictResponse[T any](accountID string, operation string) (commons.Response[T], error) {
	logger.Error("ledger service retries exhausted", domain.ErrConcurrencyConflict, logger.Fields{
		"accountId": accountID,
		"operation": operation,
	})
	return commons.ErrorResponse[T]("Account is busy", "The account was modified concurrently, please retry"), domain.ErrConcurrencyConflict
}
