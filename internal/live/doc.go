// Package live serves the draft as a phone-style group chat in a browser.
//
// The server consumes a feed subscription and pushes every public event to
// connected WebSocket clients as JSON. Late joiners get a replay of recent
// events, and a /state endpoint exposes a JSON snapshot for scripts.
package live
