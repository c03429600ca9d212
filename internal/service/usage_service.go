// internal/service/usage_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"agent-ledger/internal/domain"
	"agent-ledger/internal/repository"
	"agent-ledger/internal/util"
)

// UsageService builds read-only usage reports.
type UsageService interface {
	Summarize(ctx context.Context, pubkey string) (*domain.UsageSummary, error)
}

type usageService struct {
	dbExecutor      repository.DBExecutor
	userRepo        repository.UserRepository
	creditRepo      repository.CreditRepository
	transactionRepo repository.TransactionRepository
}

// NewUsageService creates a new instance of UsageService.
func NewUsageService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	creditRepo repository.CreditRepository,
	transactionRepo repository.TransactionRepository,
) UsageService {
	return &usageService{
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		creditRepo:      creditRepo,
		transactionRepo: transactionRepo,
	}
}

// Summarize runs the balance, last-purchase and total-spent reads concurrently.
// The three reads are not one snapshot; the report is best effort.
func (s *usageService) Summarize(ctx context.Context, pubkey string) (*domain.UsageSummary, error) {
	user, err := s.userRepo.GetUserByPubkey(ctx, s.dbExecutor, pubkey)
	if err != nil {
		return nil, fmt.Errorf("usage: failed to get user: %w", err)
	}

	summary := &domain.UsageSummary{TotalSpentUSDC: decimal.Zero}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		remaining, err := s.creditRepo.GetRemaining(gctx, s.dbExecutor, user.ID)
		if err != nil {
			return fmt.Errorf("usage: remaining credits: %w", err)
		}
		summary.RemainingCredits = remaining
		return nil
	})
	g.Go(func() error {
		last, err := s.transactionRepo.GetLatestTransaction(gctx, s.dbExecutor, user.ID)
		if err != nil {
			if util.IsError(err, util.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("usage: last transaction: %w", err)
		}
		summary.LastTransaction = last
		return nil
	})
	g.Go(func() error {
		total, err := s.transactionRepo.GetTotalSpent(gctx, s.dbExecutor, user.ID)
		if err != nil {
			return fmt.Errorf("usage: total spent: %w", err)
		}
		summary.TotalSpentUSDC = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
