// Package dispatch turns a text selection into a translator page.
//
// A Dispatcher builds the provider URL for the selection, opens it in a
// tab, records the request in the history and optionally shows a short
// machine translated preview. Only opening the page is required; the
// other steps report their outcome in the Result without affecting it.
package dispatch
