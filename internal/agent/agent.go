package agent

import (
	"context"
	"sync"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// Decider produces one team's reply to a draft prompt. Implementations must
// be safe for sequential reuse across the whole draft; the engine never
// calls a single Decider concurrently. An error means the decision could
// not be obtained at all, and the engine treats it as a pass.
type Decider interface {
	Decide(ctx context.Context, snap model.Snapshot) (string, error)
}

// Func adapts a plain function to the Decider interface.
type Func func(ctx context.Context, snap model.Snapshot) (string, error)

// Decide implements Decider.
func (f Func) Decide(ctx context.Context, snap model.Snapshot) (string, error) {
	return f(ctx, snap)
}

// Scripted replays a fixed sequence of replies, one per Decide call, then
// returns empty strings once the script runs out. Safe for concurrent use.
type Scripted struct {
	mu      sync.Mutex
	replies []string
	next    int
}

// NewScripted returns a Decider that answers with the given replies in
// order.
func NewScripted(replies ...string) *Scripted {
	return &Scripted{replies: replies}
}

// Decide implements Decider.
func (s *Scripted) Decide(_ context.Context, _ model.Snapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.replies) {
		return "", nil
	}
	r := s.replies[s.next]
	s.next++
	return r, nil
}

// Calls reports how many decisions the script has served.
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
