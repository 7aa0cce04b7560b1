// Package settings persists user configuration and translation history
// in a key/value store with change notifications. It also owns the
// migration of older records (single target language) to the current
// shape.
package settings
