package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-ledger/internal/util"
)

func TestParseMethodKeyword(t *testing.T) {
	tests := []struct {
		keyword    string
		wantAction SubscriptionAction
		wantMethod string
		wantErr    bool
	}{
		{"subscribeaccountChange", ActionSubscribe, "accountChange", false},
		{"unsubscribeaccountChange", ActionUnsubscribe, "accountChange", false},
		{"subscribelogs", ActionSubscribe, "logs", false},
		{"accountChange", "", "", true},
		{"Subscribelogs", "", "", true},
		{"subscribe", "", "", true},
		{"unsubscribe", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			action, method, err := ParseMethodKeyword(tt.keyword)
			if tt.wantErr {
				assert.ErrorIs(t, err, util.ErrInvalidMethodKeyword)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantMethod, method)
		})
	}
}

func TestSubscribeIsOrderedUnion(t *testing.T) {
	doc := NewSubscriptionDocument()

	doc.Subscribe("accountChange", []string{"A", "B"})
	doc.Subscribe("accountChange", []string{"B", "C", "C"})

	assert.Equal(t, []string{"A", "B", "C"}, doc.Keys("accountChange"))
}

func TestUnsubscribe(t *testing.T) {
	t.Run("SetDifference", func(t *testing.T) {
		doc := NewSubscriptionDocument()
		doc.Subscribe("accountChange", []string{"A", "B", "C"})

		doc.Unsubscribe("accountChange", []string{"B", "Z"})

		assert.Equal(t, []string{"A", "C"}, doc.Keys("accountChange"))
	})

	t.Run("AbsentMethodIsNoop", func(t *testing.T) {
		doc := NewSubscriptionDocument()
		doc.Subscribe("logs", []string{"X"})

		doc.Unsubscribe("accountChange", []string{"X"})

		assert.False(t, doc.Has("accountChange"))
		assert.Equal(t, []string{"X"}, doc.Keys("logs"))
	})

	t.Run("EmptiedListIsKept", func(t *testing.T) {
		doc := NewSubscriptionDocument()
		doc.Subscribe("logs", []string{"X"})

		doc.Unsubscribe("logs", []string{"X"})

		assert.True(t, doc.Has("logs"))
		assert.Empty(t, doc.Keys("logs"))
		raw, err := json.Marshal(doc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"logs":[]}`, string(raw))
	})
}

func TestApply(t *testing.T) {
	doc := NewSubscriptionDocument()

	doc.Apply(ActionSubscribe, "slotChange", nil)
	assert.False(t, doc.Has("slotChange"), "nil keys leave the document untouched")

	doc.Apply(ActionSubscribe, "slotChange", []string{})
	assert.True(t, doc.Has("slotChange"), "empty keys still create the method")

	doc.Apply(ActionSubscribe, "slotChange", []string{"S1"})
	doc.Apply(ActionUnsubscribe, "slotChange", []string{"S1"})
	assert.Empty(t, doc.Keys("slotChange"))
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewSubscriptionDocument()
	orig.Subscribe("logs", []string{"A"})

	cp := orig.Clone()
	cp.Subscribe("logs", []string{"B"})
	cp.Subscribe("other", []string{"C"})

	assert.Equal(t, []string{"A"}, orig.Keys("logs"))
	assert.False(t, orig.Has("other"))
}

func TestSubscriptionDocumentSQL(t *testing.T) {
	t.Run("RoundTripThroughValueAndScan", func(t *testing.T) {
		doc := NewSubscriptionDocument()
		doc.Subscribe("accountChange", []string{"A", "B"})

		v, err := doc.Value()
		require.NoError(t, err)

		var got SubscriptionDocument
		require.NoError(t, got.Scan(v))
		assert.Equal(t, doc, got)
	})

	t.Run("NullScansToEmpty", func(t *testing.T) {
		var got SubscriptionDocument
		require.NoError(t, got.Scan(nil))
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("JSONNullScansToEmpty", func(t *testing.T) {
		var got SubscriptionDocument
		require.NoError(t, got.Scan("null"))
		assert.NotNil(t, got)
	})

	t.Run("NilDocumentValueIsEmptyObject", func(t *testing.T) {
		var doc SubscriptionDocument
		v, err := doc.Value()
		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), v)
	})

	t.Run("RejectsUnsupportedType", func(t *testing.T) {
		var got SubscriptionDocument
		assert.Error(t, got.Scan(42))
	})
}
