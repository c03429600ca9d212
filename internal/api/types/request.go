// internal/api/types/request.go
package types

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Pubkey string `json:"pubkey"`
}

// MutateSubscriptionRequest is the body of PATCH /users/{pubkey}.
// Method is "subscribe<Name>" or "unsubscribe<Name>". Keys may be omitted,
// in which case the document is left as it is.
type MutateSubscriptionRequest struct {
	Method string   `json:"method"`
	Keys   []string `json:"keys,omitempty"`
}

// BuyCreditsRequest is the body of POST /credits/buy.
type BuyCreditsRequest struct {
	Pubkey    string `json:"pubkey"`
	PackageID int64  `json:"package_id"`
}

// CreditAmountRequest is the body of POST /credits/debit and /credits/refund.
type CreditAmountRequest struct {
	Pubkey string `json:"pubkey"`
	Amount int64  `json:"amount"`
}
