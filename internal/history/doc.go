// Package history keeps the capped log of past translations and derives
// the ranked list of target languages offered in the context menu.
package history
