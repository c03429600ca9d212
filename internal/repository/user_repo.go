// internal/repository/user_repo.go
package repository

import (
	"context"

	"agent-ledger/internal/domain"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	// InsertUserIfAbsent inserts user unless its pubkey already exists.
	// It reports whether a row was created; on false the user is left untouched.
	InsertUserIfAbsent(ctx context.Context, q DBExecutor, user *domain.User) (bool, error)
	// GetUserByPubkey returns util.ErrUserNotFound when no row matches.
	GetUserByPubkey(ctx context.Context, q DBExecutor, pubkey string) (*domain.User, error)
	// LockUserByPubkey is GetUserByPubkey with a row lock held until q's transaction ends.
	LockUserByPubkey(ctx context.Context, q DBExecutor, pubkey string) (*domain.User, error)
	// ListUsers returns every user.
	ListUsers(ctx context.Context, q DBExecutor) ([]domain.User, error)
	// UpdateSubscriptions replaces the whole subscription document of a user.
	UpdateSubscriptions(ctx context.Context, q DBExecutor, userID int64, doc domain.SubscriptionDocument) error
}
