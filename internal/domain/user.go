// internal/domain/user.go
package domain

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"agent-ledger/internal/util"
)

// solanaPubkeyLen is the decoded length of an ed25519 public key.
const solanaPubkeyLen = 32

// User is an account identified by its public key.
type User struct {
	ID            int64                `db:"id" json:"id"`
	Pubkey        string               `db:"pubkey" json:"pubkey"`
	Subscriptions SubscriptionDocument `db:"subscriptions" json:"subscriptions"`
}

// UserWithAPIKey is a User plus the API key stored on its credits row, if any.
type UserWithAPIKey struct {
	User
	APIKey *string `json:"api_key"`
}

// NewUser creates a new User with an empty subscription document.
func NewUser(pubkey string) *User {
	return &User{
		Pubkey:        pubkey,
		Subscriptions: NewSubscriptionDocument(),
	}
}

// ValidatePubkey rejects blank pubkeys. In strict mode the pubkey must also be
// a base58 string decoding to a 32-byte public key.
func ValidatePubkey(pubkey string, strict bool) error {
	if strings.TrimSpace(pubkey) == "" {
		return fmt.Errorf("%w: pubkey is required", util.ErrInvalidInput)
	}
	if !strict {
		return nil
	}
	raw, err := base58.Decode(pubkey)
	if err != nil {
		return fmt.Errorf("%w: pubkey is not base58: %v", util.ErrInvalidInput, err)
	}
	if len(raw) != solanaPubkeyLen {
		return fmt.Errorf("%w: pubkey decodes to %d bytes, want %d", util.ErrInvalidInput, len(raw), solanaPubkeyLen)
	}
	return nil
}
