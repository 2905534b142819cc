package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
)

var _ repo_interfaces.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"accountId": account.ID,
		"userId":    account.UserID,
		"currency":  account.Currency,
	})

	const query = `
INSERT INTO accounts (id, user_id, balance, currency, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING version, created_at, updated_at`

	var (
		version   int64
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.ID,
		account.UserID,
		account.Balance,
		account.Currency,
		account.IsActive,
	).Scan(&version, &createdAt, &updatedAt); err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"accountId": account.ID,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.Version = version
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `
SELECT id, user_id, balance, currency, is_active, version, created_at, updated_at, closed_at
FROM accounts
WHERE id = $1 AND closed_at IS NULL`

	var (
		account  domain.Account
		closedAt sql.NullTime
	)

	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.UserID,
		&account.Balance,
		&account.Currency,
		&account.IsActive,
		&account.Version,
		&account.CreatedAt,
		&account.UpdatedAt,
		&closedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	if closedAt.Valid {
		value := closedAt.Time
		account.ClosedAt = &value
	}

	return account, nil
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	const query = `
SELECT id, user_id, balance, currency, is_active, version, created_at, updated_at
FROM accounts
WHERE user_id = $1 AND closed_at IS NULL
ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Error("account repository list by user failed", err, logger.Fields{
			"userId": userID,
		})
		return nil, fmt.Errorf("list accounts by user: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.Balance,
			&account.Currency,
			&account.IsActive,
			&account.Version,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

// UpdateBalance writes the new balance and the transaction record in
// one storage transaction. The version predicate makes the write a
// compare-and-set: a concurrent mutation since the caller's read turns
// into domain.ErrConcurrencyConflict, never a lost update.
func (r *AccountRepository) UpdateBalance(ctx context.Context, update repo_interfaces.BalanceUpdate, transaction domain.Transaction) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin balance update transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = applyBalanceUpdate(ctx, tx, update); err != nil {
		return err
	}
	if err = insertTransaction(ctx, tx, transaction); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit balance update transaction: %w", err)
	}

	return nil
}

// ApplyTransfer posts both legs atomically. Accounts are updated in
// ascending account-id order so two opposite-direction transfers
// cannot deadlock on row locks.
func (r *AccountRepository) ApplyTransfer(ctx context.Context, debit repo_interfaces.BalanceUpdate, credit repo_interfaces.BalanceUpdate, debitTransaction domain.Transaction, creditTransaction domain.Transaction) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	updates := []repo_interfaces.BalanceUpdate{debit, credit}
	sort.Slice(updates, func(i, j int) bool {
		return updates[i].AccountID < updates[j].AccountID
	})

	for _, update := range updates {
		if err = applyBalanceUpdate(ctx, tx, update); err != nil {
			return err
		}
	}

	if err = insertTransaction(ctx, tx, debitTransaction); err != nil {
		return err
	}
	if err = insertTransaction(ctx, tx, creditTransaction); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transfer transaction: %w", err)
	}

	return nil
}

func (r *AccountRepository) SetActive(ctx context.Context, accountID string, expectedVersion int64, active bool) error {
	const query = `
UPDATE accounts
SET is_active = $3,
    version = version + 1,
    updated_at = NOW()
WHERE id = $1 AND version = $2 AND closed_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, accountID, expectedVersion, active)
	if err != nil {
		logger.Error("account repository set active failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("set account active: %w", err)
	}

	return resolveMissedWrite(ctx, r.db, result, accountID)
}

func (r *AccountRepository) Close(ctx context.Context, accountID string, expectedVersion int64) error {
	const query = `
UPDATE accounts
SET closed_at = NOW(),
    is_active = FALSE,
    version = version + 1,
    updated_at = NOW()
WHERE id = $1 AND version = $2 AND closed_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, accountID, expectedVersion)
	if err != nil {
		logger.Error("account repository close failed", err, logger.Fields{
			"accountId": accountID,
		})
		return fmt.Errorf("close account: %w", err)
	}

	return resolveMissedWrite(ctx, r.db, result, accountID)
}

func applyBalanceUpdate(ctx context.Context, tx *sql.Tx, update repo_interfaces.BalanceUpdate) error {
	const query = `
UPDATE accounts
SET balance = $3,
    version = version + 1,
    updated_at = NOW()
WHERE id = $1 AND version = $2 AND closed_at IS NULL`

	result, err := tx.ExecContext(ctx, query, update.AccountID, update.ExpectedVersion, update.NewBalance)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return classifyMissedWrite(ctx, tx, update.AccountID)
	}

	return nil
}

func insertTransaction(ctx context.Context, tx *sql.Tx, transaction domain.Transaction) error {
	const query = `
INSERT INTO transactions (id, account_id, amount, transaction_type, currency, timestamp)
VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := tx.ExecContext(
		ctx,
		query,
		transaction.ID,
		transaction.AccountID,
		transaction.Amount,
		transaction.TransactionType,
		transaction.Currency,
		transaction.Timestamp,
	); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// classifyMissedWrite distinguishes a stale version (retryable) from a
// missing or closed account (not found).
func classifyMissedWrite(ctx context.Context, q rowQuerier, accountID string) error {
	var exists bool
	if err := q.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1 AND closed_at IS NULL)`,
		accountID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("classify missed write: %w", err)
	}

	if !exists {
		return commons.ErrRecordNotFound
	}

	return domain.ErrConcurrencyConflict
}

func resolveMissedWrite(ctx context.Context, db *sql.DB, result sql.Result, accountID string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if rows == 0 {
		return classifyMissedWrite(ctx, db, accountID)
	}

	return nil
}
