// Package lang holds the static language catalog used to label menu items
// and notifications, plus validation for user-supplied language codes.
package lang
