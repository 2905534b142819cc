package service_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/commons"
)

type LoanService interface {
	GrantLoan(ctx context.Context, userID string, req models.GrantLoanRequest) (commons.Response[models.LoanResponse], error)
	RepayLoan(ctx context.Context, userID string, req models.RepayLoanRequest) (commons.Response[models.LoanResponse], error)
	ListLoans(ctx context.Context, userID string) (commons.Response[[]models.LoanResponse], error)
}
