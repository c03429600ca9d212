// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agent-ledger/internal/domain"
	"agent-ledger/internal/repository"
	"agent-ledger/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository. Methods receive their
// DBExecutor per call, so the repository holds no connection.
func NewUserRepository() repository.UserRepository {
	return &UserRepository{}
}

// InsertUserIfAbsent relies on the unique pubkey index: a concurrent insert of
// the same pubkey makes this one a no-op instead of an error.
func (r *UserRepository) InsertUserIfAbsent(ctx context.Context, q repository.DBExecutor, user *domain.User) (bool, error) {
	query := `INSERT INTO users (pubkey, subscriptions)
              VALUES ($1, $2)
              ON CONFLICT (pubkey) DO NOTHING
              RETURNING id`
	err := q.QueryRowContext(ctx, query, user.Pubkey, user.Subscriptions).Scan(&user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, wrapError("insert user", err)
	}
	return true, nil
}

// GetUserByPubkey retrieves a user by their public key.
func (r *UserRepository) GetUserByPubkey(ctx context.Context, q repository.DBExecutor, pubkey string) (*domain.User, error) {
	return r.getUser(ctx, q, `SELECT id, pubkey, subscriptions FROM users WHERE pubkey = $1`, pubkey)
}

// LockUserByPubkey retrieves a user and locks its row with FOR UPDATE.
// It must run inside a transaction to serialize document mutations.
func (r *UserRepository) LockUserByPubkey(ctx context.Context, q repository.DBExecutor, pubkey string) (*domain.User, error) {
	return r.getUser(ctx, q, `SELECT id, pubkey, subscriptions FROM users WHERE pubkey = $1 FOR UPDATE`, pubkey)
}

func (r *UserRepository) getUser(ctx context.Context, q repository.DBExecutor, query, pubkey string) (*domain.User, error) {
	var user domain.User
	if err := q.GetContext(ctx, &user, query, pubkey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrUserNotFound
		}
		return nil, wrapError(fmt.Sprintf("get user by pubkey '%s'", pubkey), err)
	}
	if user.Subscriptions == nil {
		user.Subscriptions = domain.NewSubscriptionDocument()
	}
	return &user, nil
}

// ListUsers retrieves all users. No paging; order is by id for stable output.
func (r *UserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	users := []domain.User{}
	if err := q.SelectContext(ctx, &users, `SELECT id, pubkey, subscriptions FROM users ORDER BY id`); err != nil {
		return nil, wrapError("list users", err)
	}
	return users, nil
}

// UpdateSubscriptions overwrites the subscription document of a user.
func (r *UserRepository) UpdateSubscriptions(ctx context.Context, q repository.DBExecutor, userID int64, doc domain.SubscriptionDocument) error {
	result, err := q.ExecContext(ctx, `UPDATE users SET subscriptions = $1 WHERE id = $2`, doc, userID)
	if err != nil {
		return wrapError(fmt.Sprintf("update subscriptions for user %d", userID), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapError(fmt.Sprintf("rows affected after updating subscriptions for user %d", userID), err)
	}
	if rowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}
