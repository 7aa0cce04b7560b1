package tray

import (
	"context"

	"fyne.io/fyne/v2"
)

// NotificationSender is implemented by fyne.App.
type NotificationSender interface {
	SendNotification(n *fyne.Notification)
}

// Notifier shows previews as desktop notifications.
type Notifier struct {
	app NotificationSender
}

// NewNotifier creates a Notifier sending through app.
func NewNotifier(app NotificationSender) *Notifier {
	return &Notifier{app: app}
}

// Notify sends a notification.
func (n *Notifier) Notify(ctx context.Context, title, message string) error {
	n.app.SendNotification(fyne.NewNotification(title, message))
	return nil
}

// ClipboardSelection reads the text to translate from the clipboard.
// Desktop trays have no access to the selection of other programs, so
// the user copies the text first.
type ClipboardSelection struct {
	Clipboard fyne.Clipboard
}

// Selection returns the clipboard content. tabID is ignored.
func (c ClipboardSelection) Selection(ctx context.Context, tabID int) (string, error) {
	return c.Clipboard.Content(), nil
}
