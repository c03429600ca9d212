// internal/service/subscription_service.go
package service

import (
	"context"
	"fmt"

	"agent-ledger/internal/domain"
	"agent-ledger/internal/repository"
	"agent-ledger/internal/util"
	"agent-ledger/pkg/db"
)

// SubscriptionService mutates per-user subscription documents.
type SubscriptionService interface {
	// Mutate applies a "subscribe<Name>" or "unsubscribe<Name>" instruction
	// with keys to the user's document and returns the updated user.
	Mutate(ctx context.Context, pubkey, methodKeyword string, keys []string) (*domain.User, error)
}

type subscriptionService struct {
	dbBeginner db.DBTxBeginner
	userRepo   repository.UserRepository
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewSubscriptionService creates a new instance of SubscriptionService.
func NewSubscriptionService(
	dbBeginner db.DBTxBeginner,
	userRepo repository.UserRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) SubscriptionService {
	return &subscriptionService{
		dbBeginner: dbBeginner,
		userRepo:   userRepo,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// Mutate is a read-modify-write of the whole document. The user row is locked
// for the duration of the transaction so concurrent mutations of one user
// apply one after the other instead of overwriting each other.
func (s *subscriptionService) Mutate(ctx context.Context, pubkey, methodKeyword string, keys []string) (*domain.User, error) {
	if err := domain.ValidatePubkey(pubkey, false); err != nil {
		return nil, err
	}
	action, method, err := domain.ParseMethodKeyword(methodKeyword)
	if err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, util.StorageError("mutate subscriptions: begin transaction", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("mutate subscriptions: transaction controller does not implement DBExecutor")
	}

	user, err := s.userRepo.LockUserByPubkey(ctx, txExecutor, pubkey)
	if err != nil {
		return nil, fmt.Errorf("mutate subscriptions: failed to get user: %w", err)
	}

	doc := user.Subscriptions.Clone()
	doc.Apply(action, method, keys)

	if err := s.userRepo.UpdateSubscriptions(ctx, txExecutor, user.ID, doc); err != nil {
		return nil, fmt.Errorf("mutate subscriptions: failed to persist document: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, util.StorageError("mutate subscriptions: commit transaction", err)
	}

	user.Subscriptions = doc
	return user, nil
}
