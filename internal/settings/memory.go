package settings

import (
	"bytes"
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps values in memory. It is used by tests and by the CLI
// when no store path is configured.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	notify notifier
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, keys ...string) (Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	raw := make(Raw)
	if len(keys) == 0 {
		for k, v := range m.data {
			raw[k] = append([]byte(nil), v...)
		}
		return raw, nil
	}
	for _, k := range keys {
		if v, ok := m.data[k]; ok {
			raw[k] = append([]byte(nil), v...)
		}
	}
	return raw, nil
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, values map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoded, err := encodeValues(values)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	var changed []string
	for k, v := range encoded {
		if old, ok := m.data[k]; ok && bytes.Equal(old, v) {
			continue
		}
		m.data[k] = v
		changed = append(changed, k)
	}
	sort.Strings(changed)
	m.notify.publish(changed)
	return nil
}

// Remove implements Store.
func (m *MemoryStore) Remove(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}

	var changed []string
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			changed = append(changed, k)
		}
	}
	m.notify.publish(changed)
	return nil
}

// Subscribe implements Store.
func (m *MemoryStore) Subscribe() (<-chan Change, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ch := m.notify.subscribe()
	if m.closed {
		m.notify.unsubscribe(id)
	}
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.notify.unsubscribe(id)
		})
	}
}

// Close implements Store. Subscriber channels are closed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.notify.closeAll()
	return nil
}
