// internal/domain/credit.go
package domain

// CreditBalance is the ledger row of a user. A missing row means zero credits.
type CreditBalance struct {
	UserID            int64   `db:"user_id" json:"user_id"`
	RemainingRequests int64   `db:"remaining_requests" json:"remaining_requests"`
	APIKey            *string `db:"api_key" json:"api_key,omitempty"`
}
