// internal/domain/usage.go
package domain

import "github.com/shopspring/decimal"

// UsageSummary is the derived usage report of one user. Not persisted.
type UsageSummary struct {
	RemainingCredits int64              `json:"remaining_credits"`
	LastTransaction  *PricedTransaction `json:"last_transaction"`
	TotalSpentUSDC   decimal.Decimal    `json:"total_spent_usdc"`
}
