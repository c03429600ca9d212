// internal/api/types/response.go
package types

import (
	"github.com/shopspring/decimal"

	"agent-ledger/internal/domain"
)

// ErrorResponse is returned for every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BalanceResponse reports a user's balance after a ledger change.
type BalanceResponse struct {
	RemainingCredits int64 `json:"remaining_credits"`
}

// BuyCreditsResponse is returned by POST /credits/buy.
type BuyCreditsResponse struct {
	Transaction      *domain.PricedTransaction `json:"transaction"`
	RemainingCredits int64                     `json:"remaining_credits"`
}

// UsageResponse is returned by GET /users/{pubkey}/usage.
type UsageResponse struct {
	RemainingCredits int64                     `json:"remaining_credits"`
	LastTransaction  *domain.PricedTransaction `json:"last_transaction"`
	TotalSpentUSDC   decimal.Decimal           `json:"total_spent_usdc"`
}

// NewUsageResponse converts a usage summary into its wire form.
func NewUsageResponse(summary *domain.UsageSummary) UsageResponse {
	return UsageResponse{
		RemainingCredits: summary.RemainingCredits,
		LastTransaction:  summary.LastTransaction,
		TotalSpentUSDC:   summary.TotalSpentUSDC,
	}
}
