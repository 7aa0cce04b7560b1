// Package tray implements the host APIs on top of a fyne desktop app: the
// translation menu lives in the system tray, previews become desktop
// notifications and the selection is read from the clipboard.
package tray
