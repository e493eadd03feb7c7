// Package writer persists draft output.
//
// Writers:
//   - Event writer: full audit trail into draft_events (PostgreSQL)
//   - Sale writer: lot resolutions into draft_sales (PostgreSQL)
//   - Transcript: plain-text play-by-play, one line per public event
//   - Results CSV: the source player columns plus draft outcome
//   - Plan documents: each manager's private plan, for inspection
//
// The database writers use append-only semantics (never update, only insert).
package writer
