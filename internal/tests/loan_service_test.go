package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/usecase/services"
)

type loanRepoStub struct {
	createFn         func(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	getByIDAndUserFn func(ctx context.Context, id string, userID string) (domain.Loan, error)
	updateFn         func(ctx context.Context, loan domain.Loan) (domain.Loan, error)
	listByUserFn     func(ctx context.Context, userID string) ([]domain.Loan, error)
}

func (s loanRepoStub) Create(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	if s.createFn != nil {
		return s.createFn(ctx, loan)
	}
	return loan, nil
}

func (s loanRepoStub) GetByIDAndUser(ctx context.Context, id string, userID string) (domain.Loan, error) {
	if s.getByIDAndUserFn != nil {
		return s.getByIDAndUserFn(ctx, id, userID)
	}
	return domain.Loan{}, nil
}

func (s loanRepoStub) Update(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, loan)
	}
	return loan, nil
}

func (s loanRepoStub) ListByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func newLoanService(repo loanRepoStub) *services.LoanService {
	return services.NewLoanService(
		repo,
		decimal.RequireFromString("10000000"),
		decimal.RequireFromString("50000"),
	)
}

func TestLoanServiceGrantLoanSuccess(t *testing.T) {
	svc := newLoanService(loanRepoStub{
		createFn: func(_ context.Context, loan domain.Loan) (domain.Loan, error) {
			loan.CreatedAt = time.Now().UTC()
			loan.UpdatedAt = time.Now().UTC()
			return loan, nil
		},
	})

	resp, err := svc.GrantLoan(context.Background(), "u-1", models.GrantLoanRequest{Amount: "5000"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.Amount != "5000.00" {
		t.Fatalf("expected amount 5000.00, got %s", resp.Data.Amount)
	}
	if resp.Data.IsPaid {
		t.Fatal("expected new loan to be unpaid")
	}
}

func TestLoanServiceGrantLoanDeniedOverMaximum(t *testing.T) {
	svc := newLoanService(loanRepoStub{})

	resp, err := svc.GrantLoan(context.Background(), "u-1", models.GrantLoanRequest{Amount: "50001"})
	if err == nil {
		t.Fatal("expected error for loan above maximum")
	}
	if resp.Message != "Loan request denied" {
		t.Fatalf("expected denial message, got %q", resp.Message)
	}
}

func TestLoanServiceGrantLoanDeniedWhenCapitalExhausted(t *testing.T) {
	svc := services.NewLoanService(
		loanRepoStub{},
		decimal.RequireFromString("1000"),
		decimal.RequireFromString("50000"),
	)

	_, err := svc.GrantLoan(context.Background(), "u-1", models.GrantLoanRequest{Amount: "2000"})
	if err == nil {
		t.Fatal("expected error when requested amount exceeds bank capital")
	}
}

func TestLoanServiceRepayLoanPartial(t *testing.T) {
	svc := newLoanService(loanRepoStub{
		getByIDAndUserFn: func(_ context.Context, id string, userID string) (domain.Loan, error) {
			return domain.Loan{ID: id, UserID: userID, Amount: decimal.RequireFromString("5000")}, nil
		},
	})

	resp, err := svc.RepayLoan(context.Background(), "u-1", models.RepayLoanRequest{
		LoanID: "l-1",
		Amount: "1500",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.Amount != "3500.00" {
		t.Fatalf("expected remaining 3500.00, got %s", resp.Data.Amount)
	}
	if resp.Data.IsPaid {
		t.Fatal("expected loan to remain unpaid after partial repayment")
	}
}

func TestLoanServiceRepayLoanInFullMarksPaid(t *testing.T) {
	svc := newLoanService(loanRepoStub{
		getByIDAndUserFn: func(_ context.Context, id string, userID string) (domain.Loan, error) {
			return domain.Loan{ID: id, UserID: userID, Amount: decimal.RequireFromString("1500")}, nil
		},
	})

	resp, err := svc.RepayLoan(context.Background(), "u-1", models.RepayLoanRequest{
		LoanID: "l-1",
		Amount: "1500",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Data.IsPaid {
		t.Fatal("expected loan to be marked paid")
	}
	if resp.Data.Amount != "0.00" {
		t.Fatalf("expected remaining 0.00, got %s", resp.Data.Amount)
	}
}

func TestLoanServiceRepayLoanRejectsOverpayment(t *testing.T) {
	svc := newLoanService(loanRepoStub{
		getByIDAndUserFn: func(_ context.Context, id string, userID string) (domain.Loan, error) {
			return domain.Loan{ID: id, UserID: userID, Amount: decimal.RequireFromString("1000")}, nil
		},
	})

	_, err := svc.RepayLoan(context.Background(), "u-1", models.RepayLoanRequest{
		LoanID: "l-1",
		Amount: "1001",
	})
	if err == nil {
		t.Fatal("expected error for repayment above outstanding balance")
	}
}

func TestLoanServiceRepayLoanNotFound(t *testing.T) {
	svc := newLoanService(loanRepoStub{
		getByIDAndUserFn: func(context.Context, string, string) (domain.Loan, error) {
			return domain.Loan{}, commons.ErrRecordNotFound
		},
	})

	_, err := svc.RepayLoan(context.Background(), "u-1", models.RepayLoanRequest{
		LoanID: "missing",
		Amount: "100",
	})
	if !errors.Is(err, domain.ErrLoanNotFound) {
		t.Fatalf("expected ErrLoanNotFound, got %v", err)
	}
}

func TestLoanServiceListLoans(t *testing.T) {
	svc := newLoanService(loanRepoStub{
		listByUserFn: func(_ context.Context, userID string) ([]domain.Loan, error) {
			return []domain.Loan{
				{ID: "l-1", UserID: userID, Amount: decimal.RequireFromString("100")},
				{ID: "l-2", UserID: userID, Amount: decimal.RequireFromString("200"), IsPaid: true},
			}, nil
		},
	})

	resp, err := svc.ListLoans(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(*resp.Data) != 2 {
		t.Fatalf("expected two loans, got %d", len(*resp.Data))
	}
}
