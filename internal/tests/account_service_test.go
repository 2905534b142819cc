package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/banking-ledger/internal/usecase/services"
)

func TestAccountServiceCreateAccountSuccess(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	resp, err := svc.CreateAccount(context.Background(), "u-1", models.CreateAccountRequest{
		Currency: "usd",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.Currency != "USD" {
		t.Fatalf("expected normalized currency USD, got %s", resp.Data.Currency)
	}
	if resp.Data.Balance != "0.00" {
		t.Fatalf("expected zero opening balance, got %s", resp.Data.Balance)
	}
	if !resp.Data.IsActive {
		t.Fatal("expected new account to be active")
	}
}

func TestAccountServiceCreateAccountValidationError(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository())

	_, err := svc.CreateAccount(context.Background(), "u-1", models.CreateAccountRequest{})
	if err == nil {
		t.Fatal("expected validation error for missing currency")
	}

	_, err = svc.CreateAccount(context.Background(), "", models.CreateAccountRequest{Currency: "USD"})
	if err == nil {
		t.Fatal("expected validation error for missing user id")
	}
}

func TestAccountServiceListAccountsScopedToUser(t *testing.T) {
	repo := memory.NewAccountRepository()
	svc := services.NewAccountService(repo)

	if _, err := svc.CreateAccount(context.Background(), "u-1", models.CreateAccountRequest{Currency: "USD"}); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	if _, err := svc.CreateAccount(context.Background(), "u-1", models.CreateAccountRequest{Currency: "EUR"}); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	if _, err := svc.CreateAccount(context.Background(), "u-2", models.CreateAccountRequest{Currency: "ILS"}); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	resp, err := svc.ListAccounts(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(*resp.Data) != 2 {
		t.Fatalf("expected two accounts for u-1, got %d", len(*resp.Data))
	}
	for _, account := range *resp.Data {
		if account.UserID != "u-1" {
			t.Fatalf("expected only u-1 accounts, got one for %s", account.UserID)
		}
	}
}
