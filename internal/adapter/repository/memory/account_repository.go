package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
)

var (
	_ repo_interfaces.AccountRepository     = (*AccountRepository)(nil)
	_ repo_interfaces.TransactionRepository = (*AccountRepository)(nil)
)

// AccountRepository keeps accounts and their transactions in memory
// behind a single mutex, so every write is atomic and serialized. It
// honors the same version compare-and-set contract as the Postgres
// implementation, which makes it a drop-in store for tests.
type AccountRepository struct {
	mu           sync.Mutex
	accounts     map[string]*domain.Account
	transactions []domain.Transaction
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{accounts: make(map[string]*domain.Account)}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	account.Version = 1
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := account
	r.accounts[account.ID] = &stored

	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok || account.IsClosed() {
		return domain.Account{}, commons.ErrRecordNotFound
	}

	return *account, nil
}

func (r *AccountRepository) ListByUser(_ context.Context, userID string) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := []domain.Account{}
	for _, account := range r.accounts {
		if account.UserID == userID && !account.IsClosed() {
			accounts = append(accounts, *account)
		}
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})

	return accounts, nil
}

func (r *AccountRepository) UpdateBalance(_ context.Context, update repo_interfaces.BalanceUpdate, transaction domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, err := r.writable(update.AccountID, update.ExpectedVersion)
	if err != nil {
		return err
	}

	account.Balance = update.NewBalance
	account.Version++
	account.UpdatedAt = time.Now().UTC()
	r.transactions = append(r.transactions, transaction)

	return nil
}

func (r *AccountRepository) ApplyTransfer(_ context.Context, debit repo_interfaces.BalanceUpdate, credit repo_interfaces.BalanceUpdate, debitTransaction domain.Transaction, creditTransaction domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	debitAccount, err := r.writable(debit.AccountID, debit.ExpectedVersion)
	if err != nil {
		return err
	}
	creditAccount, err := r.writable(credit.AccountID, credit.ExpectedVersion)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	debitAccount.Balance = debit.NewBalance
	debitAccount.Version++
	debitAccount.UpdatedAt = now
	creditAccount.Balance = credit.NewBalance
	creditAccount.Version++
	creditAccount.UpdatedAt = now

	r.transactions = append(r.transactions, debitTransaction, creditTransaction)

	return nil
}

func (r *AccountRepository) SetActive(_ context.Context, accountID string, expectedVersion int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, err := r.writable(accountID, expectedVersion)
	if err != nil {
		return err
	}

	account.IsActive = active
	account.Version++
	account.UpdatedAt = time.Now().UTC()

	return nil
}

func (r *AccountRepository) Close(_ context.Context, accountID string, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, err := r.writable(accountID, expectedVersion)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	account.ClosedAt = &now
	account.IsActive = false
	account.Version++
	account.UpdatedAt = now

	return nil
}

func (r *AccountRepository) ListByAccountIDs(_ context.Context, accountIDs []string, limit int) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = struct{}{}
	}

	transactions := []domain.Transaction{}
	for _, transaction := range r.transactions {
		if _, ok := wanted[transaction.AccountID]; ok {
			transactions = append(transactions, transaction)
		}
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.After(transactions[j].Timestamp)
	})

	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}

	return transactions, nil
}

// writable resolves the target for a compare-and-set write inside the
// critical section. Callers must hold r.mu.
func (r *AccountRepository) writable(accountID string, expectedVersion int64) (*domain.Account, error) {
	account, ok := r.accounts[accountID]
	if !ok || account.IsClosed() {
		return nil, commons.ErrRecordNotFound
	}
	if account.Version != expectedVersion {
		return nil, domain.ErrConcurrencyConflict
	}

	return account, nil
}
