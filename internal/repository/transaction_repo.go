// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"agent-ledger/internal/domain"
)

// TransactionRepository defines the append-only purchase log.
type TransactionRepository interface {
	// CreateTransaction appends a purchase and fills in its ID.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetLatestTransaction returns the newest purchase joined with its package
	// price, or util.ErrNotFound when the user never purchased.
	GetLatestTransaction(ctx context.Context, q DBExecutor, userID int64) (*domain.PricedTransaction, error)
	// GetTotalSpent sums the package prices of all the user's purchases.
	GetTotalSpent(ctx context.Context, q DBExecutor, userID int64) (decimal.Decimal, error)
}
