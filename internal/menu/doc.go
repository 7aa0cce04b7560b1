// Package menu keeps the context menu in step with the stored settings
// and translation history. Rebuilds run on a single worker so they never
// interleave.
package menu
