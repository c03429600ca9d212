// internal/repository/postgres/credit_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agent-ledger/internal/repository"
	"agent-ledger/internal/util"
)

// CreditRepository implements repository.CreditRepository for PostgreSQL.
type CreditRepository struct{}

// NewCreditRepository creates a new CreditRepository.
func NewCreditRepository() repository.CreditRepository {
	return &CreditRepository{}
}

// GetRemaining returns the user's remaining requests, 0 without a credits row.
func (r *CreditRepository) GetRemaining(ctx context.Context, q repository.DBExecutor, userID int64) (int64, error) {
	var remaining int64
	err := q.GetContext(ctx, &remaining, `SELECT remaining_requests FROM credits WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, wrapError(fmt.Sprintf("get remaining credits for user %d", userID), err)
	}
	return remaining, nil
}

// Debit decrements the balance in one statement guarded by the balance
// predicate, so two concurrent debits can never both spend the same credits.
func (r *CreditRepository) Debit(ctx context.Context, q repository.DBExecutor, userID, amount int64) (int64, error) {
	query := `UPDATE credits
              SET remaining_requests = remaining_requests - $1
              WHERE user_id = $2 AND remaining_requests >= $1
              RETURNING remaining_requests`
	var remaining int64
	if err := q.GetContext(ctx, &remaining, query, amount, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, util.ErrInsufficientCredits
		}
		return 0, wrapError(fmt.Sprintf("debit %d credits for user %d", amount, userID), err)
	}
	return remaining, nil
}

// Credit increments the balance, inserting the row with apiKey the first time.
// An existing api key is never replaced.
func (r *CreditRepository) Credit(ctx context.Context, q repository.DBExecutor, userID, amount int64, apiKey string) (int64, error) {
	query := `INSERT INTO credits (user_id, remaining_requests, api_key)
              VALUES ($1, $2, $3)
              ON CONFLICT (user_id) DO UPDATE
              SET remaining_requests = credits.remaining_requests + EXCLUDED.remaining_requests
              RETURNING remaining_requests`
	var remaining int64
	if err := q.GetContext(ctx, &remaining, query, userID, amount, apiKey); err != nil {
		return 0, wrapError(fmt.Sprintf("credit %d credits for user %d", amount, userID), err)
	}
	return remaining, nil
}

// GetAPIKey returns the api key stored with the user's credits, nil if none.
func (r *CreditRepository) GetAPIKey(ctx context.Context, q repository.DBExecutor, userID int64) (*string, error) {
	var apiKey sql.NullString
	err := q.GetContext(ctx, &apiKey, `SELECT api_key FROM credits WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapError(fmt.Sprintf("get api key for user %d", userID), err)
	}
	if !apiKey.Valid {
		return nil, nil
	}
	return &apiKey.String, nil
}
