// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package is a purchasable bundle of credits from the pricing catalog.
type Package struct {
	ID        int64           `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Requests  int64           `db:"requests" json:"requests"`
	PriceUSDC decimal.Decimal `db:"price_usdc" json:"price_usdc"`
}

// Transaction is one completed credit purchase. Rows are append-only.
type Transaction struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"-"`
	PackageID int64     `db:"package_id" json:"package_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PricedTransaction is a Transaction joined with the price of its package.
type PricedTransaction struct {
	Transaction
	AmountUSDC decimal.Decimal `db:"amount_usdc" json:"amount_usdc"`
}

// NewTransaction creates a purchase record stamped with the current time.
func NewTransaction(userID, packageID int64) *Transaction {
	return &Transaction{
		UserID:    userID,
		PackageID: packageID,
		CreatedAt: time.Now().UTC(),
	}
}
