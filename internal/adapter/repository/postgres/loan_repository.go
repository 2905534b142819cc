package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/api-sage/banking-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/banking-ledger/internal/commons"
	"github.com/api-sage/banking-ledger/internal/domain"
	"github.com/api-sage/banking-ledger/internal/logger"
)

var _ repo_interfaces.LoanRepository = (*LoanRepository)(nil)

type LoanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	logger.Info("loan repository create", logger.Fields{
		"loanId": loan.ID,
		"userId": loan.UserID,
	})

	const query = `
INSERT INTO loans (id, user_id, amount, is_paid)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`

	var (
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		loan.ID,
		loan.UserID,
		loan.Amount,
		loan.IsPaid,
	).Scan(&createdAt, &updatedAt); err != nil {
		logger.Error("loan repository create failed", err, logger.Fields{
			"loanId": loan.ID,
		})
		return domain.Loan{}, fmt.Errorf("create loan: %w", err)
	}

	loan.CreatedAt = createdAt
	loan.UpdatedAt = updatedAt

	return loan, nil
}

func (r *LoanRepository) GetByIDAndUser(ctx context.Context, id string, userID string) (domain.Loan, error) {
	const query = `
SELECT id, user_id, amount, is_paid, created_at, updated_at
FROM loans
WHERE id = $1 AND user_id = $2`

	var loan domain.Loan
	if err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&loan.ID,
		&loan.UserID,
		&loan.Amount,
		&loan.IsPaid,
		&loan.CreatedAt,
		&loan.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Loan{}, commons.ErrRecordNotFound
		}
		logger.Error("loan repository get failed", err, logger.Fields{
			"loanId": id,
		})
		return domain.Loan{}, fmt.Errorf("get loan: %w", err)
	}

	return loan, nil
}

func (r *LoanRepository) Update(ctx context.Context, loan domain.Loan) (domain.Loan, error) {
	const query = `
UPDATE loans
SET amount = $2,
    is_paid = $3,
    updated_at = NOW()
WHERE id = $1
RETURNING created_at, updated_at`

	var (
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(ctx, query, loan.ID, loan.Amount, loan.IsPaid).Scan(&createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Loan{}, commons.ErrRecordNotFound
		}
		logger.Error("loan repository update failed", err, logger.Fields{
			"loanId": loan.ID,
		})
		return domain.Loan{}, fmt.Errorf("update loan: %w", err)
	}

	loan.CreatedAt = createdAt
	loan.UpdatedAt = updatedAt

	return loan, nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	const query = `
SELECT id, user_id, amount, is_paid, created_at, updated_at
FROM loans
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Error("loan repository list failed", err, logger.Fields{
			"userId": userID,
		})
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		var loan domain.Loan
		if err := rows.Scan(
			&loan.ID,
			&loan.UserID,
			&loan.Amount,
			&loan.IsPaid,
			&loan.CreatedAt,
			&loan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan loan row: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loan rows: %w", err)
	}

	return loans, nil
}
