package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/selectrans/internal/menu"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// Recorder keeps an ordered log of calls made on the fakes sharing it.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *Recorder) record(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// Calls returns a copy of the call log.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how many calls start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, c := range r.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// MockMenu is an in-memory context menu recording "removeAll" and
// "create <id>" calls.
type MockMenu struct {
	*Recorder

	RemoveAllErr error

	mu    sync.Mutex
	items []menu.Item
}

// NewMockMenu creates a menu logging to rec. A nil rec gets a new one.
func NewMockMenu(rec *Recorder) *MockMenu {
	if rec == nil {
		rec = &Recorder{}
	}
	return &MockMenu{Recorder: rec}
}

func (m *MockMenu) RemoveAll(ctx context.Context) error {
	m.record("removeAll")
	if m.RemoveAllErr != nil {
		return m.RemoveAllErr
	}
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
	return nil
}

func (m *MockMenu) Create(ctx context.Context, item menu.Item) error {
	m.record("create %s", item.ID)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == item.ID {
			return fmt.Errorf("duplicate menu item %q", item.ID)
		}
	}
	m.items = append(m.items, item)
	return nil
}

// Items returns the current menu items in creation order.
func (m *MockMenu) Items() []menu.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]menu.Item(nil), m.items...)
}

// MockTabs records "update <id> <url>" and "create <url>" calls.
type MockTabs struct {
	*Recorder

	Err error

	// Active is returned by ActiveTab; ActiveOK false means no tab.
	Active   int
	ActiveOK bool
}

// NewMockTabs creates tabs logging to rec. A nil rec gets a new one.
func NewMockTabs(rec *Recorder) *MockTabs {
	if rec == nil {
		rec = &Recorder{}
	}
	return &MockTabs{Recorder: rec}
}

func (m *MockTabs) Update(ctx context.Context, tabID int, url string) error {
	m.record("update %d %s", tabID, url)
	return m.Err
}

func (m *MockTabs) Create(ctx context.Context, url string) error {
	m.record("create %s", url)
	return m.Err
}

func (m *MockTabs) ActiveTab(ctx context.Context) (int, bool, error) {
	m.record("activeTab")
	return m.Active, m.ActiveOK, nil
}

// Notification is one notification shown by MockNotifier.
type Notification struct {
	Title   string
	Message string
}

// MockNotifier collects notifications.
type MockNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (m *MockNotifier) Notify(ctx context.Context, title, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Notification{Title: title, Message: message})
	return nil
}

// Sent returns the notifications shown so far.
func (m *MockNotifier) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.sent...)
}

// FetchCall is the arguments of one MockFetcher.Fetch call.
type FetchCall struct {
	Text, Source, Target string
}

// MockFetcher returns a fixed preview or error.
type MockFetcher struct {
	Out string
	Err error

	mu    sync.Mutex
	calls []FetchCall
}

func (m *MockFetcher) Fetch(ctx context.Context, text, source, target string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, FetchCall{Text: text, Source: source, Target: target})
	m.mu.Unlock()
	return m.Out, m.Err
}

func (m *MockFetcher) Name() string {
	return "mock"
}

// Calls returns the recorded Fetch calls.
func (m *MockFetcher) Calls() []FetchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]FetchCall(nil), m.calls...)
}

// MockSelection returns a fixed selection for any tab.
type MockSelection struct {
	Text string
	Err  error
}

func (m *MockSelection) Selection(ctx context.Context, tabID int) (string, error) {
	return m.Text, m.Err
}

// ErrStore is returned by FailingStore.
var ErrStore = errors.New("store unavailable")

// FailingStore wraps a store and fails the operations that are switched
// on.
type FailingStore struct {
	settings.Store

	FailGet bool
	FailSet bool
}

func (f *FailingStore) Get(ctx context.Context, keys ...string) (settings.Raw, error) {
	if f.FailGet {
		return nil, ErrStore
	}
	return f.Store.Get(ctx, keys...)
}

func (f *FailingStore) Set(ctx context.Context, values map[string]any) error {
	if f.FailSet {
		return ErrStore
	}
	return f.Store.Set(ctx, values)
}

// BufLogger collects log lines.
type BufLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *BufLogger) Printf(format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

// Lines returns the logged lines.
func (l *BufLogger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Contains reports whether any line contains substr.
func (l *BufLogger) Contains(substr string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
