package tray

import (
	"bytes"
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/selectrans/internal/host"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// WindowCreator is implemented by fyne.App.
type WindowCreator interface {
	NewWindow(title string) fyne.Window
}

// OptionsWindow shows the stored settings in a window. Editing happens
// through "selectrans settings set".
type OptionsWindow struct {
	app   WindowCreator
	store settings.Store
	title string

	// do runs fn on the fyne main goroutine.
	do func(fn func())
}

// NewOptionsWindow creates an OptionsWindow with the given title.
func NewOptionsWindow(app WindowCreator, store settings.Store, title string) *OptionsWindow {
	return &OptionsWindow{
		app:   app,
		store: store,
		title: title,
		do:    fyne.Do,
	}
}

// OpenOptions reads the settings and opens a window showing them.
func (o *OptionsWindow) OpenOptions(ctx context.Context) error {
	var buf bytes.Buffer
	if err := (host.OptionsPrinter{W: &buf, Store: o.store}).OpenOptions(ctx); err != nil {
		return err
	}
	text := buf.String()

	o.do(func() { o.show(text) })
	return nil
}

func (o *OptionsWindow) show(text string) {
	w := o.app.NewWindow(o.title)

	label := widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})

	copyButton := ttwidget.NewButton("", func() {
		w.Clipboard().SetContent(text)
	})
	copyButton.Icon = theme.ContentCopyIcon()

	closeButton := ttwidget.NewButton("", w.Close)
	closeButton.Icon = theme.CancelIcon()

	buttons := container.NewHBox(layout.NewSpacer(), copyButton, closeButton)
	content := container.NewBorder(nil, buttons, nil, nil, container.NewScroll(label))

	w.SetContent(fynetooltip.AddWindowToolTipLayer(content, w.Canvas()))
	copyButton.SetToolTip("Copy settings (c)")
	closeButton.SetToolTip("Close (Esc)")

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			w.Close()
		case fyne.KeyC:
			w.Clipboard().SetContent(text)
		}
	})

	w.Resize(fyne.NewSize(480, 420))
	w.Show()
}
