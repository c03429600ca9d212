// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"agent-ledger/internal/domain"
	"agent-ledger/internal/repository"
	"agent-ledger/internal/util"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new purchase record. A missing user or package
// surfaces as util.ErrNotFound through the foreign keys.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (user_id, package_id, created_at)
              VALUES ($1, $2, $3) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.PackageID,
		transaction.CreatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return wrapError("create transaction", err)
	}
	return nil
}

// GetLatestTransaction returns the most recent purchase of a user with the
// price of its package as amount_usdc.
func (r *TransactionRepository) GetLatestTransaction(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.PricedTransaction, error) {
	query := `
		SELECT t.id, t.user_id, t.package_id, p.price_usdc AS amount_usdc, t.created_at
		FROM transactions t
		JOIN packages p ON t.package_id = p.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT 1`
	var tx domain.PricedTransaction
	if err := q.GetContext(ctx, &tx, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, wrapError(fmt.Sprintf("get latest transaction for user %d", userID), err)
	}
	return &tx, nil
}

// GetTotalSpent sums package prices over every purchase of the user. The sum
// is exact NUMERIC arithmetic and is zero when there are no purchases.
func (r *TransactionRepository) GetTotalSpent(ctx context.Context, q repository.DBExecutor, userID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(p.price_usdc), 0)
		FROM transactions t
		JOIN packages p ON t.package_id = p.id
		WHERE t.user_id = $1`
	var total decimal.Decimal
	if err := q.GetContext(ctx, &total, query, userID); err != nil {
		return decimal.Zero, wrapError(fmt.Sprintf("get total spent for user %d", userID), err)
	}
	return total, nil
}
