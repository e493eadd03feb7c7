// Package metrics holds process-local counters for a draft run.
//
// Counters are plain atomics, cheap enough to bump from the hot path. The
// daemon's health endpoint snapshots them; nothing here talks to an
// external metrics system.
package metrics

import "sync/atomic"

// Counters aggregates engine and agent activity for one process.
type Counters struct {
	LotsOpened   atomic.Int64
	BidsAccepted atomic.Int64
	BidsRejected atomic.Int64
	Passes       atomic.Int64
	Sales        atomic.Int64
	NoSales      atomic.Int64

	AgentCalls  atomic.Int64
	AgentErrors atomic.Int64

	EventsPublished atomic.Int64
}

// NewCounters returns a zeroed counter set.
func NewCounters() *Counters { return &Counters{} }

// Snapshot returns the current values keyed by stable metric names.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"lots_opened":      c.LotsOpened.Load(),
		"bids_accepted":    c.BidsAccepted.Load(),
		"bids_rejected":    c.BidsRejected.Load(),
		"passes":           c.Passes.Load(),
		"sales":            c.Sales.Load(),
		"no_sales":         c.NoSales.Load(),
		"agent_calls":      c.AgentCalls.Load(),
		"agent_errors":     c.AgentErrors.Load(),
		"events_published": c.EventsPublished.Load(),
	}
}
