package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/api-sage/banking-ledger/internal/adapter/http/models"
	"github.com/api-sage/banking-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/usecase/services"
)

func newLedgerFixture(t *testing.T, floor string, strict bool) (*services.LedgerService, *memory.AccountRepository) {
	t.Helper()

	accountRepo := memory.NewAccountRepository()
	rateService := services.NewRateService(memory.NewRateRepository())
	feeService := services.NewFeeService(decimal.RequireFromString("0.01"))

	svc := services.NewLedgerService(
		accountRepo,
		rateService,
		feeService,
		decimal.RequireFromString(floor),
		strict,
	)

	return svc, accountRepo
}

func seedAccount(t *testing.T, repo *memory.AccountRepository, balance string, currency string) domain.Account {
	t.Helper()

	account, err := repo.Create(context.Background(), domain.Account{
		ID:       uuid.NewString(),
		UserID:   uuid.NewString(),
		Balance:  decimal.RequireFromString(balance),
		Currency: currency,
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	return account
}

func TestLedgerServiceDepositAppliesFee(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "500.00", "ILS")

	resp, err := svc.Deposit(context.Background(), models.DepositFundsRequest{
		AccountID: account.ID,
		Amount:    "200",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data == nil {
		t.Fatal("expected successful response with data")
	}
	if resp.Data.Fee != "2.00" {
		t.Fatalf("expected fee 2.00, got %s", resp.Data.Fee)
	}
	if resp.Data.NetAmount != "198.00" {
		t.Fatalf("expected net amount 198.00, got %s", resp.Data.NetAmount)
	}
	if resp.Data.Balance != "698.00" {
		t.Fatalf("expected balance 698.00, got %s", resp.Data.Balance)
	}

	transactions, err := repo.ListByAccountIDs(context.Background(), []string{account.ID}, 0)
	if err != nil {
		t.Fatalf("failed to list transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(transactions))
	}
	if transactions[0].TransactionType != domain.TransactionTypeDeposit {
		t.Fatalf("expected deposit transaction, got %s", transactions[0].TransactionType)
	}
	if !transactions[0].Amount.Equal(decimal.RequireFromString("198.00")) {
		t.Fatalf("expected transaction amount 198.00, got %s", transactions[0].Amount.String())
	}
}

func TestLedgerServiceDepositRejectsNonPositiveAmount(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "500.00", "ILS")

	for _, amount := range []string{"0", "-50"} {
		_, err := svc.Deposit(context.Background(), models.DepositFundsRequest{
			AccountID: account.ID,
			Amount:    amount,
		})
		if err == nil {
			t.Fatalf("expected error for deposit amount %s", amount)
		}
	}

	transactions, _ := repo.ListByAccountIDs(context.Background(), []string{account.ID}, 0)
	if len(transactions) != 0 {
		t.Fatalf("expected no transactions after rejected deposits, got %d", len(transactions))
	}
}

func TestLedgerServiceDepositUnknownAccount(t *testing.T) {
	svc, _ := newLedgerFixture(t, "-1000", false)

	_, err := svc.Deposit(context.Background(), models.DepositFundsRequest{
		AccountID: uuid.NewString(),
		Amount:    "100",
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestLedgerServiceDepositConvertsCurrency(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "0.00", "ILS")

	resp, err := svc.Deposit(context.Background(), models.DepositFundsRequest{
		AccountID: account.ID,
		Amount:    "100",
		Currency:  "USD",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	// 100 USD less 1.00 fee is 99 USD, converted at 3.5 to 346.50 ILS.
	if resp.Data.NetAmount != "346.50" {
		t.Fatalf("expected net amount 346.50, got %s", resp.Data.NetAmount)
	}
	if resp.Data.Balance != "346.50" {
		t.Fatalf("expected balance 346.50, got %s", resp.Data.Balance)
	}
}

func TestLedgerServiceDepositUnsupportedConversion(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "0.00", "ILS")

	_, err := svc.Deposit(context.Background(), models.DepositFundsRequest{
		AccountID: account.ID,
		Amount:    "100",
		Currency:  "GBP",
	})
	if !errors.Is(err, domain.ErrUnsupportedConversion) {
		t.Fatalf("expected ErrUnsupportedConversion, got %v", err)
	}
}

func TestLedgerServiceWithdrawAddsFeeToDebit(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "698.00", "ILS")

	resp, err := svc.Withdraw(context.Background(), models.WithdrawFundsRequest{
		AccountID: account.ID,
		Amount:    "300",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.Fee != "3.00" {
		t.Fatalf("expected fee 3.00, got %s", resp.Data.Fee)
	}
	if resp.Data.NetAmount != "303.00" {
		t.Fatalf("expected net debit 303.00, got %s", resp.Data.NetAmount)
	}
	if resp.Data.Balance != "395.00" {
		t.Fatalf("expected balance 395.00, got %s", resp.Data.Balance)
	}
}

func TestLedgerServiceWithdrawAllowsOverdraftToFloor(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "0.00", "USD")

	resp, err := svc.Withdraw(context.Background(), models.WithdrawFundsRequest{
		AccountID: account.ID,
		Amount:    "900",
	})
	if err != nil {
		t.Fatalf("expected overdraft within floor to succeed, got %v", err)
	}
	if resp.Data.Balance != "-909.00" {
		t.Fatalf("expected balance -909.00, got %s", resp.Data.Balance)
	}
}

func TestLedgerServiceWithdrawRejectsBelowFloor(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "0.00", "USD")

	_, err := svc.Withdraw(context.Background(), models.WithdrawFundsRequest{
		AccountID: account.ID,
		Amount:    "995",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	fetched, _ := repo.GetByID(context.Background(), account.ID)
	if !fetched.Balance.Equal(decimal.Zero) {
		t.Fatalf("expected balance unchanged, got %s", fetched.Balance.String())
	}
	transactions, _ := repo.ListByAccountIDs(context.Background(), []string{account.ID}, 0)
	if len(transactions) != 0 {
		t.Fatalf("expected no transactions after rejected withdrawal, got %d", len(transactions))
	}
}

func TestLedgerServiceTransferDebitsFeeAndCreditsNominal(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	from := seedAccount(t, repo, "500.00", "ILS")
	to := seedAccount(t, repo, "200.00", "ILS")

	resp, err := svc.Transfer(context.Background(), models.TransferFundsRequest{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        "100",
		Currency:      "ILS",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.DebitAmount != "101.00" {
		t.Fatalf("expected debit 101.00, got %s", resp.Data.DebitAmount)
	}
	if resp.Data.CreditAmount != "100.00" {
		t.Fatalf("expected credit 100.00, got %s", resp.Data.CreditAmount)
	}
	if resp.Data.FromBalance != "399.00" {
		t.Fatalf("expected source balance 399.00, got %s", resp.Data.FromBalance)
	}
	if resp.Data.ToBalance != "300.00" {
		t.Fatalf("expected destination balance 300.00, got %s", resp.Data.ToBalance)
	}

	transactions, _ := repo.ListByAccountIDs(context.Background(), []string{from.ID, to.ID}, 0)
	if len(transactions) != 2 {
		t.Fatalf("expected two transfer transactions, got %d", len(transactions))
	}
}

func TestLedgerServiceTransferInsufficientFundsLeavesStateUntouched(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	from := seedAccount(t, repo, "500.00", "ILS")
	to := seedAccount(t, repo, "200.00", "ILS")

	_, err := svc.Transfer(context.Background(), models.TransferFundsRequest{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        "2000",
		Currency:      "ILS",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	fromAfter, _ := repo.GetByID(context.Background(), from.ID)
	toAfter, _ := repo.GetByID(context.Background(), to.ID)
	if !fromAfter.Balance.Equal(decimal.RequireFromString("500.00")) {
		t.Fatalf("expected source balance unchanged, got %s", fromAfter.Balance.String())
	}
	if !toAfter.Balance.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("expected destination balance unchanged, got %s", toAfter.Balance.String())
	}
	transactions, _ := repo.ListByAccountIDs(context.Background(), []string{from.ID, to.ID}, 0)
	if len(transactions) != 0 {
		t.Fatalf("expected no transactions after rejected transfer, got %d", len(transactions))
	}
}

func TestLedgerServiceTransferStrictModeConvertsCredit(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", true)
	from := seedAccount(t, repo, "500.00", "USD")
	to := seedAccount(t, repo, "0.00", "ILS")

	resp, err := svc.Transfer(context.Background(), models.TransferFundsRequest{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        "100",
		Currency:      "USD",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.DebitAmount != "101.00" {
		t.Fatalf("expected debit 101.00, got %s", resp.Data.DebitAmount)
	}
	// 100 USD converted at 3.5 lands as 350.00 ILS.
	if resp.Data.CreditAmount != "350.00" {
		t.Fatalf("expected credit 350.00, got %s", resp.Data.CreditAmount)
	}
	if resp.Data.ToBalance != "350.00" {
		t.Fatalf("expected destination balance 350.00, got %s", resp.Data.ToBalance)
	}
}

func TestLedgerServiceSuspendIsIdempotent(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "100.00", "USD")

	for i := 0; i < 2; i++ {
		resp, err := svc.Suspend(context.Background(), models.SuspendAccountRequest{
			AccountID: account.ID,
		})
		if err != nil {
			t.Fatalf("suspend attempt %d failed: %v", i+1, err)
		}
		if resp.Data.IsActive {
			t.Fatal("expected account to be inactive after suspend")
		}
	}

	fetched, _ := repo.GetByID(context.Background(), account.ID)
	if fetched.IsActive {
		t.Fatal("expected stored account to be inactive")
	}
}

func TestLedgerServiceSuspendedAccountStillTransacts(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "100.00", "USD")

	if _, err := svc.Suspend(context.Background(), models.SuspendAccountRequest{AccountID: account.ID}); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}

	resp, err := svc.Deposit(context.Background(), models.DepositFundsRequest{
		AccountID: account.ID,
		Amount:    "100",
	})
	if err != nil {
		t.Fatalf("expected deposit into suspended account to succeed, got %v", err)
	}
	if resp.Data.Balance != "199.00" {
		t.Fatalf("expected balance 199.00, got %s", resp.Data.Balance)
	}
}

func TestLedgerServiceCloseZeroBalance(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "0.00", "USD")

	_, err := svc.Close(context.Background(), models.CloseAccountRequest{
		AccountID: account.ID,
	})
	if err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}

	if _, err := repo.GetByID(context.Background(), account.ID); err == nil {
		t.Fatal("expected closed account to be hidden from lookups")
	}
}

func TestLedgerServiceCloseNegativeBalanceRejected(t *testing.T) {
	svc, repo := newLedgerFixture(t, "-1000", false)
	account := seedAccount(t, repo, "-10.00", "USD")

	_, err := svc.Close(context.Background(), models.CloseAccountRequest{
		AccountID: account.ID,
	})
	if !errors.Is(err, domain.ErrNegativeBalance) {
		t.Fatalf("expected ErrNegativeBalance, got %v", err)
	}

	if _, err := repo.GetByID(context.Background(), account.ID); err != nil {
		t.Fatalf("expected account to remain open, got %v", err)
	}
}

func TestLedgerServiceConcurrentWithdrawalsSerialize(t *testing.T) {
	svc, repo := newLedgerFixture(t, "0", false)
	account := seedAccount(t, repo, "500.00", "USD")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, err := svc.Withdraw(context.Background(), models.WithdrawFundsRequest{
				AccountID: account.ID,
				Amount:    "400",
			})
			results[slot] = err
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientFunds):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || rejected != 1 {
		t.Fatalf("expected exactly one success and one rejection, got %d/%d", succeeded, rejected)
	}

	fetched, _ := repo.GetByID(context.Background(), account.ID)
	if !fetched.Balance.Equal(decimal.RequireFromString("96.00")) {
		t.Fatalf("expected balance 96.00 after one withdrawal, got %s", fetched.Balance.String())
	}
	transactions, _ := repo.ListByAccountIDs(context.Background(), []string{account.ID}, 0)
	if len(transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(transactions))
	}
}
