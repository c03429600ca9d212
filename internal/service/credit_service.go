// internal/service/credit_service.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"agent-ledger/internal/domain"
	"agent-ledger/internal/repository"
	"agent-ledger/internal/util"
	"agent-ledger/pkg/db"
)

// CreditService is the credit ledger. Balances are counted in requests.
type CreditService interface {
	Remaining(ctx context.Context, userID int64) (int64, error)
	Debit(ctx context.Context, userID, amount int64) (int64, error)
	Credit(ctx context.Context, userID, amount int64) (int64, error)
	Refund(ctx context.Context, userID, amount int64) (int64, error)

	// DebitByPubkey and RefundByPubkey resolve the user first and fail with
	// util.ErrUserNotFound for unknown pubkeys.
	DebitByPubkey(ctx context.Context, pubkey string, amount int64) (int64, error)
	RefundByPubkey(ctx context.Context, pubkey string, amount int64) (int64, error)
	// BuyCredits records a purchase of packageID and credits its requests in
	// one database transaction.
	BuyCredits(ctx context.Context, pubkey string, packageID int64) (*domain.PricedTransaction, int64, error)
	ListPackages(ctx context.Context) ([]domain.Package, error)
}

type creditService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	userRepo        repository.UserRepository
	creditRepo      repository.CreditRepository
	transactionRepo repository.TransactionRepository
	packageRepo     repository.PackageRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
	newAPIKey       func() string
}

// NewCreditService creates a new instance of CreditService.
func NewCreditService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	creditRepo repository.CreditRepository,
	transactionRepo repository.TransactionRepository,
	packageRepo repository.PackageRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) CreditService {
	return &creditService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		userRepo:        userRepo,
		creditRepo:      creditRepo,
		transactionRepo: transactionRepo,
		packageRepo:     packageRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
		newAPIKey:       uuid.NewString,
	}
}

// Remaining never fails on a missing ledger row; that reads as 0.
func (s *creditService) Remaining(ctx context.Context, userID int64) (int64, error) {
	remaining, err := s.creditRepo.GetRemaining(ctx, s.dbExecutor, userID)
	if err != nil {
		return 0, fmt.Errorf("remaining credits: %w", err)
	}
	return remaining, nil
}

func (s *creditService) Debit(ctx context.Context, userID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: debit amount must be positive", util.ErrInvalidInput)
	}
	remaining, err := s.creditRepo.Debit(ctx, s.dbExecutor, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("debit: %w", err)
	}
	return remaining, nil
}

func (s *creditService) Credit(ctx context.Context, userID, amount int64) (int64, error) {
	return s.credit(ctx, s.dbExecutor, "credit", userID, amount)
}

// Refund returns credits to a user. Whether the caller may refund is decided
// before this call.
func (s *creditService) Refund(ctx context.Context, userID, amount int64) (int64, error) {
	return s.credit(ctx, s.dbExecutor, "refund", userID, amount)
}

func (s *creditService) credit(ctx context.Context, q repository.DBExecutor, op string, userID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: %s amount must be positive", util.ErrInvalidInput, op)
	}
	remaining, err := s.creditRepo.Credit(ctx, q, userID, amount, s.newAPIKey())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return remaining, nil
}

func (s *creditService) DebitByPubkey(ctx context.Context, pubkey string, amount int64) (int64, error) {
	user, err := s.userRepo.GetUserByPubkey(ctx, s.dbExecutor, pubkey)
	if err != nil {
		return 0, fmt.Errorf("debit: failed to get user: %w", err)
	}
	return s.Debit(ctx, user.ID, amount)
}

func (s *creditService) RefundByPubkey(ctx context.Context, pubkey string, amount int64) (int64, error) {
	user, err := s.userRepo.GetUserByPubkey(ctx, s.dbExecutor, pubkey)
	if err != nil {
		return 0, fmt.Errorf("refund: failed to get user: %w", err)
	}
	return s.Refund(ctx, user.ID, amount)
}

func (s *creditService) BuyCredits(ctx context.Context, pubkey string, packageID int64) (*domain.PricedTransaction, int64, error) {
	if packageID <= 0 {
		return nil, 0, fmt.Errorf("%w: package id must be positive", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, 0, util.StorageError("buy credits: begin transaction", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, 0, fmt.Errorf("buy credits: transaction controller does not implement DBExecutor")
	}

	user, err := s.userRepo.GetUserByPubkey(ctx, txExecutor, pubkey)
	if err != nil {
		return nil, 0, fmt.Errorf("buy credits: failed to get user: %w", err)
	}
	pkg, err := s.packageRepo.GetPackageByID(ctx, txExecutor, packageID)
	if err != nil {
		return nil, 0, fmt.Errorf("buy credits: failed to get package %d: %w", packageID, err)
	}

	transaction := domain.NewTransaction(user.ID, pkg.ID)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, 0, fmt.Errorf("buy credits: failed to record transaction: %w", err)
	}

	remaining, err := s.credit(ctx, txExecutor, "buy credits", user.ID, pkg.Requests)
	if err != nil {
		return nil, 0, err
	}

	if err := s.commitTx(txController); err != nil {
		return nil, 0, util.StorageError("buy credits: commit transaction", err)
	}

	return &domain.PricedTransaction{Transaction: *transaction, AmountUSDC: pkg.PriceUSDC}, remaining, nil
}

func (s *creditService) ListPackages(ctx context.Context) ([]domain.Package, error) {
	packages, err := s.packageRepo.ListPackages(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}
