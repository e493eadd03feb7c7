// Package database provides the PostgreSQL connection pool for the draft
// archive.
//
// The archive holds two append-only tables:
//   - draft_events: every event a run publishes, keyed by event_id
//   - draft_sales: one row per sold player, keyed by (draft_id, item)
//
// The pool is optional; a draft runs fine without a database configured.
package database
