// Package model defines shared data types used across the draft engine.
//
// Conventions:
//   - Money: plain integer auction dollars (no cents; bids are whole multiples
//     of the configured increment)
//   - Timestamps: int64 microseconds since Unix epoch
//   - IDs: string for team and item names, uuid.UUID for draft/event IDs
package model
