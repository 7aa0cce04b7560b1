package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// AreaSync is the storage area reported in change notifications.
const AreaSync = "sync"

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("settings store is closed")

// Raw maps storage keys to their JSON encoded values.
type Raw map[string]json.RawMessage

// Change notifies subscribers which keys were modified.
type Change struct {
	Keys []string
	Area string
}

// Has reports whether key is part of the change.
func (c Change) Has(key string) bool {
	for _, k := range c.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Store is a durable key/value store.
type Store interface {
	// Get returns the stored values for keys. Keys without a value are
	// absent from the result. Without keys every stored value is returned.
	Get(ctx context.Context, keys ...string) (Raw, error)

	// Set JSON-encodes and stores every value atomically.
	Set(ctx context.Context, values map[string]any) error

	// Remove deletes keys.
	Remove(ctx context.Context, keys ...string) error

	// Subscribe returns a channel of change notifications and a function
	// that cancels the subscription.
	Subscribe() (<-chan Change, func())

	Close() error
}

// subscriberBuffer is the per-subscriber notification backlog. When it is
// full further notifications for that subscriber are dropped.
const subscriberBuffer = 16

// notifier fans change notifications out to subscribers.
type notifier struct {
	nextID int
	subs   map[int]chan Change
}

func (n *notifier) subscribe() (int, chan Change) {
	if n.subs == nil {
		n.subs = make(map[int]chan Change)
	}
	n.nextID++
	ch := make(chan Change, subscriberBuffer)
	n.subs[n.nextID] = ch
	return n.nextID, ch
}

func (n *notifier) unsubscribe(id int) {
	if ch, ok := n.subs[id]; ok {
		delete(n.subs, id)
		close(ch)
	}
}

func (n *notifier) publish(keys []string) {
	if len(keys) == 0 {
		return
	}
	for _, ch := range n.subs {
		select {
		case ch <- Change{Keys: append([]string(nil), keys...), Area: AreaSync}:
		default:
		}
	}
}

func (n *notifier) closeAll() {
	for id := range n.subs {
		n.unsubscribe(id)
	}
}

func encodeValues(values map[string]any) (map[string][]byte, error) {
	encoded := make(map[string][]byte, len(values))
	for k, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", k, err)
		}
		encoded[k] = data
	}
	return encoded, nil
}
