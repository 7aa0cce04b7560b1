// Package provider maps a translation provider, language pair and encoded
// text to the provider's web translator URL.
package provider
