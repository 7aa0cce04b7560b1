// Package app wires the settings store, the menu synchronizer and the
// dispatcher to the host events: install, startup, settings changes,
// menu clicks and keyboard commands.
package app
