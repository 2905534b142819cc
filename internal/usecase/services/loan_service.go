package services

import (
	"context"
	"errors"
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

var _ service_interfaces.LoanService = (*LoanService)(nil)

// LoanService is deliberately shallow: loans share no invariants with
// the account ledger and never touch account balances.
type LoanService struct {
	loanRepo      repo_interfaces.LoanRepository
	bankCapital   decimal.Decimal
	maxLoanAmount decimal.Decimal
}

func NewLoanService(loanRepo repo_interfaces.LoanRepository, bankCapital decimal.Decimal, maxLoanAmount decimal.Decimal) *LoanService {
	return &LoanService{
		loanRepo:      loanRepo,
		bankCapital:   bankCapital,
		maxLoanAmount: maxLoanAmount,
	}
}

func (s *LoanService) GrantLoan(ctx context.Context, userID string, req models.GrantLoanRequest) (commons.Response[models.LoanResponse], error) {
	logger.Info("loan service grant request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if strings.TrimSpace(userID) == "" {
		err := fmt.Errorf("userId is required")
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	if err := req.Validate(); err != nil {
		logger.Error("loan service grant validation failed", err, nil)
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if amount.GreaterThan(s.maxLoanAmount) || s.bankCapital.LessThan(amount) {
		err := fmt.Errorf("loan request denied")
		logger.Info("loan service grant denied", logger.Fields{
			"userId": userID,
			"amount": amount.StringFixed(2),
		})
		return commons.ErrorResponse[models.LoanResponse]("Loan request denied"), err
	}

	loan := domain.Loan{
		ID:     uuid.NewString(),
		UserID: strings.TrimSpace(userID),
		Amount: amount.Round(2),
	}

	created, err := s.loanRepo.Create(ctx, loan)
	if err != nil {
		logger.Error("loan service grant repository failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to grant loan", "Unable to grant loan right now"), err
	}

	logger.Info("loan service grant success", logger.Fields{
		"loanId": created.ID,
		"userId": created.UserID,
		"amount": created.Amount.StringFixed(2),
	})

	return commons.SuccessResponse("loan granted successfully", mapLoanToResponse(created)), nil
}

func (s *LoanService) RepayLoan(ctx context.Context, userID string, req models.RepayLoanRequest) (commons.Response[models.LoanResponse], error) {
	logger.Info("loan service repay request", logger.Fields{
		"userId":  userID,
		"payload": logger.SanitizePayload(req),
	})

	if strings.TrimSpace(userID) == "" {
		err := fmt.Errorf("userId is required")
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	if err := req.Validate(); err != nil {
		logger.Error("loan service repay validation failed", err, nil)
		return commons.ErrorResponse[models.LoanResponse]("validation failed", err.Error()), err
	}

	loan, err := s.loanRepo.GetByIDAndUser(ctx, strings.TrimSpace(req.LoanID), strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.LoanResponse]("Loan not found", domain.ErrLoanNotFound.Error()), domain.ErrLoanNotFound
		}
		logger.Error("loan service repay lookup failed", err, logger.Fields{
			"loanId": req.LoanID,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to repay loan", "Unable to repay loan right now"), err
	}

	amount, _ := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if amount.GreaterThan(loan.Amount) {
		err := fmt.Errorf("repayment amount exceeds loan balance")
		return commons.ErrorResponse[models.LoanResponse]("validation failed", "Repayment amount exceeds loan balance."), err
	}

	loan.Amount = loan.Amount.Sub(amount).Round(2)
	if loan.Amount.IsZero() {
		loan.IsPaid = true
	}

	updated, err := s.loanRepo.Update(ctx, loan)
	if err != nil {
		logger.Error("loan service repay repository failed", err, logger.Fields{
			"loanId": loan.ID,
		})
		return commons.ErrorResponse[models.LoanResponse]("failed to repay loan", "Unable to repay loan right now"), err
	}

	logger.Info("loan service repay success", logger.Fields{
		"loanId":    updated.ID,
		"remaining": updated.Amount.StringFixed(2),
		"isPaid":    updated.IsPaid,
	})

	return commons.SuccessResponse("loan repaid successfully", mapLoanToResponse(updated)), nil
}

func (s *LoanService) ListLoans(ctx context.Context, userID string) (commons.Response[[]models.LoanResponse], error) {
	logger.Info("loan service list request", logger.Fields{
		"userId": userID,
	})

	if strings.TrimSpace(userID) == "" {
		err := fmt.Errorf("userId is required")
		return commons.ErrorResponse[[]models.LoanResponse]("validation failed", err.Error()), err
	}

	loans, err := s.loanRepo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		logger.Error("loan service list failed", err, logger.Fields{
			"userId": userID,
		})
		return commons.ErrorResponse[[]models.LoanResponse]("failed to list loans", "Unable to fetch loans right now"), err
	}

	resp := make([]models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		resp = append(resp, mapLoanToResponse(loan))
	}

	return commons.SuccessResponse("loans fetched successfully", resp), nil
}

func mapLoanToResponse(loan domain.Loan) models.LoanResponse {
	return models.LoanResponse{
		ID:        loan.ID,
		UserID:    loan.UserID,
		Amount:    loan.Amount.StringFixed(2),
		IsPaid:    loan.IsPaid,
		CreatedAt: loan.CreatedAt.Format(time.RFC3339),
		UpdatedAt: loan.UpdatedAt.Format(time.RFC3339),
	}
}
