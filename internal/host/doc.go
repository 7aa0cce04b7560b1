// Package host provides the desktop side of the browser host APIs: an
// in-memory context menu, a tab opener backed by the system URL handler,
// a console notifier and a fixed text selection.
package host
