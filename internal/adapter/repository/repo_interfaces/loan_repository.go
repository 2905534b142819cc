package repo_interfaces

import (
	"context"

	"github.com/api-sage/banking-ledger/internal/domain"
)

type LoanRepository interface {
	Create(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	GetByIDAndUser(ctx context.Context, id string, userID string) (domain.Loan, error)
	Update(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Loan, error)
}
