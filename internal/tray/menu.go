package tray

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"

	"codeberg.org/snonux/selectrans/internal/host"
	"codeberg.org/snonux/selectrans/internal/menu"
)

// Menu is a menu host backed by a fyne menu. Every change rebuilds the
// fyne menu and hands it to apply, typically the app's
// SetSystemTrayMenu.
type Menu struct {
	label string
	tree  *host.MenuTree
	apply func(*fyne.Menu)

	mu      sync.Mutex
	onClick func(id string)
}

// NewMenu creates an empty menu titled label.
func NewMenu(label string, apply func(*fyne.Menu)) *Menu {
	return &Menu{
		label: label,
		tree:  host.NewMenuTree(),
		apply: apply,
	}
}

// OnClick sets the function called with the id of a clicked item.
func (m *Menu) OnClick(fn func(id string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onClick = fn
}

// RemoveAll deletes every item.
func (m *Menu) RemoveAll(ctx context.Context) error {
	if err := m.tree.RemoveAll(ctx); err != nil {
		return err
	}
	m.apply(m.Build())
	return nil
}

// Create adds item below its parent.
func (m *Menu) Create(ctx context.Context, item menu.Item) error {
	if err := m.tree.Create(ctx, item); err != nil {
		return err
	}
	m.apply(m.Build())
	return nil
}

// Build returns the current items as a fyne menu. Items with children
// get a submenu.
func (m *Menu) Build() *fyne.Menu {
	byID := make(map[string]*fyne.MenuItem)
	var top []*fyne.MenuItem

	for _, it := range m.tree.Items() {
		mi := fyne.NewMenuItem(it.Title, m.clickFunc(it.ID))
		byID[it.ID] = mi

		parent, ok := byID[it.ParentID]
		if !ok {
			top = append(top, mi)
			continue
		}
		if parent.ChildMenu == nil {
			parent.ChildMenu = fyne.NewMenu("")
		}
		parent.ChildMenu.Items = append(parent.ChildMenu.Items, mi)
	}

	return fyne.NewMenu(m.label, top...)
}

func (m *Menu) clickFunc(id string) func() {
	return func() {
		m.mu.Lock()
		fn := m.onClick
		m.mu.Unlock()

		if fn != nil {
			fn(id)
		}
	}
}
