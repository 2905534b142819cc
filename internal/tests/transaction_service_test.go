package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/usecase/services"
)

// balanceKeep targets the nth consecutive write on a freshly seeded
// account without changing its balance.
func balanceKeep(account domain.Account, write int64) repo_interfaces.BalanceUpdate {
	return repo_interfaces.BalanceUpdate{
		AccountID:       account.ID,
		ExpectedVersion: account.Version + write,
		NewBalance:      account.Balance,
	}
}

func TestTransactionServiceListNewestFirst(t *testing.T) {
	repo := memory.NewAccountRepository()
	svc := services.NewTransactionService(repo, repo)

	account := seedAccount(t, repo, "1000.00", "USD")
	base := time.Now().UTC().Add(-time.Hour)

	for i, amount := range []string{"10.00", "20.00", "30.00"} {
		update := domain.Transaction{
			ID:              amount,
			AccountID:       account.ID,
			Amount:          decimal.RequireFromString(amount),
			TransactionType: domain.TransactionTypeDeposit,
			Currency:        "USD",
			Timestamp:       base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.UpdateBalance(context.Background(), balanceKeep(account, int64(i)), update); err != nil {
			t.Fatalf("failed to record transaction: %v", err)
		}
	}

	resp, err := svc.ListUserTransactions(context.Background(), account.UserID, 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	got := *resp.Data
	if len(got) != 3 {
		t.Fatalf("expected three transactions, got %d", len(got))
	}
	if got[0].ID != "30.00" || got[2].ID != "10.00" {
		t.Fatalf("expected newest-first ordering, got %s .. %s", got[0].ID, got[2].ID)
	}
}

func TestTransactionServiceListHonorsLimit(t *testing.T) {
	repo := memory.NewAccountRepository()
	svc := services.NewTransactionService(repo, repo)

	account := seedAccount(t, repo, "1000.00", "USD")
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		update := domain.Transaction{
			ID:              time.Duration(i).String(),
			AccountID:       account.ID,
			Amount:          decimal.NewFromInt(int64(i + 1)),
			TransactionType: domain.TransactionTypeDeposit,
			Currency:        "USD",
			Timestamp:       base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.UpdateBalance(context.Background(), balanceKeep(account, int64(i)), update); err != nil {
			t.Fatalf("failed to record transaction: %v", err)
		}
	}

	resp, err := svc.ListUserTransactions(context.Background(), account.UserID, 2)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(*resp.Data) != 2 {
		t.Fatalf("expected two transactions with limit 2, got %d", len(*resp.Data))
	}
}

func TestTransactionServiceListNoAccounts(t *testing.T) {
	repo := memory.NewAccountRepository()
	svc := services.NewTransactionService(repo, repo)

	resp, err := svc.ListUserTransactions(context.Background(), "nobody", 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(*resp.Data) != 0 {
		t.Fatalf("expected empty transaction list, got %d", len(*resp.Data))
	}
}
