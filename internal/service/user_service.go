// internal/service/user_service.go
package service

import (
	"context"
	"fmt"

	"agent-ledger/internal/domain"
	"agent-ledger/internal/repository"
)

// UserService resolves public keys to users.
type UserService interface {
	// ResolveOrCreate returns the user for pubkey, creating it on first sight.
	// created is false when the user already existed.
	ResolveOrCreate(ctx context.Context, pubkey string) (user *domain.User, created bool, err error)
	FindByPubkey(ctx context.Context, pubkey string) (*domain.User, error)
	GetUserWithAPIKey(ctx context.Context, pubkey string) (*domain.UserWithAPIKey, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	dbExecutor    repository.DBExecutor
	userRepo      repository.UserRepository
	creditRepo    repository.CreditRepository
	strictPubkeys bool
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	creditRepo repository.CreditRepository,
	strictPubkeys bool,
) UserService {
	return &userService{
		dbExecutor:    dbExecutor,
		userRepo:      userRepo,
		creditRepo:    creditRepo,
		strictPubkeys: strictPubkeys,
	}
}

// ResolveOrCreate inserts with ON CONFLICT DO NOTHING and falls back to a
// re-fetch, so concurrent first calls for one pubkey yield a single row.
func (s *userService) ResolveOrCreate(ctx context.Context, pubkey string) (*domain.User, bool, error) {
	if err := domain.ValidatePubkey(pubkey, s.strictPubkeys); err != nil {
		return nil, false, err
	}

	user := domain.NewUser(pubkey)
	created, err := s.userRepo.InsertUserIfAbsent(ctx, s.dbExecutor, user)
	if err != nil {
		return nil, false, fmt.Errorf("resolve user: %w", err)
	}
	if created {
		return user, true, nil
	}

	existing, err := s.userRepo.GetUserByPubkey(ctx, s.dbExecutor, pubkey)
	if err != nil {
		return nil, false, fmt.Errorf("resolve user: failed to re-fetch existing user: %w", err)
	}
	return existing, false, nil
}

func (s *userService) FindByPubkey(ctx context.Context, pubkey string) (*domain.User, error) {
	if err := domain.ValidatePubkey(pubkey, false); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetUserByPubkey(ctx, s.dbExecutor, pubkey)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// GetUserWithAPIKey looks the api key up on the user's credits row.
func (s *userService) GetUserWithAPIKey(ctx context.Context, pubkey string) (*domain.UserWithAPIKey, error) {
	user, err := s.FindByPubkey(ctx, pubkey)
	if err != nil {
		return nil, err
	}
	apiKey, err := s.creditRepo.GetAPIKey(ctx, s.dbExecutor, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get user api key: %w", err)
	}
	return &domain.UserWithAPIKey{User: *user, APIKey: apiKey}, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
