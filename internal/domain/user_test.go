package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-ledger/internal/util"
)

func TestValidatePubkey(t *testing.T) {
	valid := base58.Encode(make([]byte, 32))

	t.Run("BlankAlwaysRejected", func(t *testing.T) {
		assert.ErrorIs(t, ValidatePubkey("  ", false), util.ErrInvalidInput)
		assert.ErrorIs(t, ValidatePubkey("", true), util.ErrInvalidInput)
	})

	t.Run("LenientAcceptsAnyString", func(t *testing.T) {
		assert.NoError(t, ValidatePubkey("not-a-solana-key", false))
	})

	t.Run("StrictRequires32Bytes", func(t *testing.T) {
		assert.NoError(t, ValidatePubkey(valid, true))
		assert.ErrorIs(t, ValidatePubkey(base58.Encode(make([]byte, 16)), true), util.ErrInvalidInput)
		assert.ErrorIs(t, ValidatePubkey("0OIl", true), util.ErrInvalidInput)
	})
}

func TestUserWithAPIKeyJSON(t *testing.T) {
	u := NewUser("pk1")
	u.ID = 7
	u.Subscriptions.Subscribe("logs", []string{"A"})

	raw, err := json.Marshal(UserWithAPIKey{User: *u})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"pubkey":"pk1","subscriptions":{"logs":["A"]},"api_key":null}`, string(raw))

	key := "k-1"
	raw, err = json.Marshal(UserWithAPIKey{User: *u, APIKey: &key})
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(raw), `"api_key":"k-1"`))
}
