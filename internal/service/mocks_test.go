// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"agent-ledger/internal/domain"
	"agent-ledger/internal/repository"
	"agent-ledger/pkg/db"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) InsertUserIfAbsent(ctx context.Context, q repository.DBExecutor, user *domain.User) (bool, error) {
	args := m.Called(ctx, q, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByPubkey(ctx context.Context, q repository.DBExecutor, pubkey string) (*domain.User, error) {
	args := m.Called(ctx, q, pubkey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) LockUserByPubkey(ctx context.Context, q repository.DBExecutor, pubkey string) (*domain.User, error) {
	args := m.Called(ctx, q, pubkey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]domain.User, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateSubscriptions(ctx context.Context, q repository.DBExecutor, userID int64, doc domain.SubscriptionDocument) error {
	args := m.Called(ctx, q, userID, doc)
	return args.Error(0)
}

// MockCreditRepository is a mock implementation of repository.CreditRepository.
type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) GetRemaining(ctx context.Context, q repository.DBExecutor, userID int64) (int64, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditRepository) Debit(ctx context.Context, q repository.DBExecutor, userID, amount int64) (int64, error) {
	args := m.Called(ctx, q, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditRepository) Credit(ctx context.Context, q repository.DBExecutor, userID, amount int64, apiKey string) (int64, error) {
	args := m.Called(ctx, q, userID, amount, apiKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCreditRepository) GetAPIKey(ctx context.Context, q repository.DBExecutor, userID int64) (*string, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetLatestTransaction(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.PricedTransaction, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricedTransaction), args.Error(1)
}

func (m *MockTransactionRepository) GetTotalSpent(ctx context.Context, q repository.DBExecutor, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockPackageRepository is a mock implementation of repository.PackageRepository.
type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) GetPackageByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Package, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) ListPackages(ctx context.Context, q repository.DBExecutor) ([]domain.Package, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Package), args.Error(1)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It embeds MockDBExecutor so the service can use it as a repository.DBExecutor.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// txFuncs returns begin/commit/rollback functions that drive mockTx.
func txFuncs(mockTx *MockTxController, beginErr error) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		if beginErr != nil {
			return nil, beginErr
		}
		return mockTx, nil
	}
	commit := func(tx db.TxController) error {
		return mockTx.Commit()
	}
	rollback := func(tx db.TxController) {
		_ = mockTx.Rollback()
	}
	return begin, commit, rollback
}
