package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"codeberg.org/snonux/selectrans/internal/menu"
)

// ErrDuplicateItem is returned when an item id is created twice.
var ErrDuplicateItem = errors.New("duplicate menu item")

// MenuTree is an in-memory context menu.
type MenuTree struct {
	mu    sync.Mutex
	items []menu.Item
}

// NewMenuTree creates an empty menu.
func NewMenuTree() *MenuTree {
	return &MenuTree{}
}

// RemoveAll deletes every item.
func (m *MenuTree) RemoveAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

// Create adds item. Its parent, when set, must already exist.
func (m *MenuTree) Create(ctx context.Context, item menu.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	parentFound := item.ParentID == ""
	for _, it := range m.items {
		if it.ID == item.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
		}
		if it.ID == item.ParentID {
			parentFound = true
		}
	}
	if !parentFound {
		return fmt.Errorf("menu item %s: unknown parent %s", item.ID, item.ParentID)
	}

	m.items = append(m.items, item)
	return nil
}

// Items returns the items in creation order.
func (m *MenuTree) Items() []menu.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]menu.Item(nil), m.items...)
}

// Render writes the menu as an indented tree.
func (m *MenuTree) Render(w io.Writer) error {
	items := m.Items()

	children := make(map[string][]menu.Item)
	var roots []menu.Item
	for _, it := range items {
		if it.ParentID == "" {
			roots = append(roots, it)
			continue
		}
		children[it.ParentID] = append(children[it.ParentID], it)
	}

	var render func(it menu.Item, depth int) error
	render = func(it menu.Item, depth int) error {
		if _, err := fmt.Fprintf(w, "%*s%s  [%s]\n", depth*2, "", it.Title, it.ID); err != nil {
			return err
		}
		for _, child := range children[it.ID] {
			if err := render(child, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		if err := render(root, 0); err != nil {
			return err
		}
	}
	return nil
}
