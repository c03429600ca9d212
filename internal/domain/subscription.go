// internal/domain/subscription.go
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"agent-ledger/internal/util"
)

// Keyword prefixes of a subscription instruction such as "subscribeaccountChange".
const (
	subscribePrefix   = "subscribe"
	unsubscribePrefix = "unsubscribe"
)

// SubscriptionAction says whether an instruction adds or removes keys.
type SubscriptionAction string

const (
	ActionSubscribe   SubscriptionAction = "subscribe"
	ActionUnsubscribe SubscriptionAction = "unsubscribe"
)

// ParseMethodKeyword splits "subscribe<Name>" or "unsubscribe<Name>" into the
// action and the method key <Name>.
func ParseMethodKeyword(keyword string) (SubscriptionAction, string, error) {
	var (
		action SubscriptionAction
		method string
	)
	switch {
	case strings.HasPrefix(keyword, subscribePrefix):
		action, method = ActionSubscribe, strings.TrimPrefix(keyword, subscribePrefix)
	case strings.HasPrefix(keyword, unsubscribePrefix):
		action, method = ActionUnsubscribe, strings.TrimPrefix(keyword, unsubscribePrefix)
	default:
		return "", "", fmt.Errorf("%w: %q", util.ErrInvalidMethodKeyword, keyword)
	}
	if method == "" {
		return "", "", fmt.Errorf("%w: %q has no method name", util.ErrInvalidMethodKeyword, keyword)
	}
	return action, method, nil
}

// SubscriptionDocument maps a method key to an ordered, duplicate-free list of
// subscription keys. It is stored as a JSON object in users.subscriptions.
type SubscriptionDocument map[string][]string

// NewSubscriptionDocument returns an empty document.
func NewSubscriptionDocument() SubscriptionDocument {
	return SubscriptionDocument{}
}

// Keys returns the keys subscribed under method, nil if the method is absent.
func (d SubscriptionDocument) Keys(method string) []string {
	return d[method]
}

// Has reports whether method is present, even with an empty list.
func (d SubscriptionDocument) Has(method string) bool {
	_, ok := d[method]
	return ok
}

// list returns the list for method, creating an empty one when absent.
func (d SubscriptionDocument) list(method string) []string {
	l, ok := d[method]
	if !ok || l == nil {
		l = []string{}
		d[method] = l
	}
	return l
}

// Subscribe appends every key not already present under method, in input
// order. The method is created on first use.
func (d SubscriptionDocument) Subscribe(method string, keys []string) {
	l := d.list(method)
	for _, k := range keys {
		if !slices.Contains(l, k) {
			l = append(l, k)
		}
	}
	d[method] = l
}

// Unsubscribe removes every key in keys from method. An absent method is a
// no-op; an emptied list stays in the document.
func (d SubscriptionDocument) Unsubscribe(method string, keys []string) {
	l, ok := d[method]
	if !ok {
		return
	}
	d[method] = slices.DeleteFunc(slices.Clone(l), func(v string) bool {
		return slices.Contains(keys, v)
	})
	if d[method] == nil {
		d[method] = []string{}
	}
}

// Apply executes one instruction. nil keys leave the document untouched.
func (d SubscriptionDocument) Apply(action SubscriptionAction, method string, keys []string) {
	if keys == nil {
		return
	}
	switch action {
	case ActionSubscribe:
		d.Subscribe(method, keys)
	case ActionUnsubscribe:
		d.Unsubscribe(method, keys)
	}
}

// Clone returns a deep copy so a mutation can be applied without touching
// the value read from storage.
func (d SubscriptionDocument) Clone() SubscriptionDocument {
	out := make(SubscriptionDocument, len(d))
	for k, v := range d {
		out[k] = slices.Clone(v)
		if out[k] == nil {
			out[k] = []string{}
		}
	}
	return out
}

// Value implements driver.Valuer for the JSONB column.
func (d SubscriptionDocument) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner. NULL scans to an empty document.
func (d *SubscriptionDocument) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*d = NewSubscriptionDocument()
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("subscription document: unsupported scan type %T", src)
	}

	doc := NewSubscriptionDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("subscription document: %w", err)
	}
	if doc == nil {
		doc = NewSubscriptionDocument()
	}
	*d = doc
	return nil
}
