// internal/repository/credit_repo.go
package repository

import "context"

// CreditRepository defines the credit ledger operations. Every balance change
// is a single conditional statement so concurrent callers never lose updates.
type CreditRepository interface {
	// GetRemaining returns the remaining requests, 0 when the user has no row.
	GetRemaining(ctx context.Context, q DBExecutor, userID int64) (int64, error)
	// Debit subtracts amount if the balance covers it and returns the new balance.
	// It returns util.ErrInsufficientCredits otherwise.
	Debit(ctx context.Context, q DBExecutor, userID, amount int64) (int64, error)
	// Credit adds amount, creating the row with apiKey on first use, and returns the new balance.
	Credit(ctx context.Context, q DBExecutor, userID, amount int64, apiKey string) (int64, error)
	// GetAPIKey returns the api key of the user's credits row, nil when absent.
	GetAPIKey(ctx context.Context, q DBExecutor, userID int64) (*string, error)
}
