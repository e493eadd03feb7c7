package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// Ledger holds the thread-safe team cache. Teams are stored in rotation
// order; ApplySale is the only mutation.
type Ledger struct {
	mu sync.RWMutex

	minBid   int
	maxSlots int

	// All teams indexed by name.
	teams map[string]*model.Team

	// Rotation order as configured.
	order []string

	// Sum of starting budgets, fixed at construction.
	initialTotal int
}

// New builds a ledger from the configured teams. Empty or duplicate team
// names and non-positive budgets are rejected.
func New(teams []model.Team, minBid, maxSlots int) (*Ledger, error) {
	if minBid <= 0 {
		return nil, fmt.Errorf("minimum bid must be positive, got %d", minBid)
	}
	if maxSlots <= 0 {
		return nil, fmt.Errorf("roster size must be positive, got %d", maxSlots)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("no teams configured")
	}

	l := &Ledger{
		minBid:   minBid,
		maxSlots: maxSlots,
		teams:    make(map[string]*model.Team, len(teams)),
		order:    make([]string, 0, len(teams)),
	}

	for i, t := range teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("team %d: empty name", i)
		}
		if _, exists := l.teams[name]; exists {
			return nil, fmt.Errorf("duplicate team name %q", name)
		}
		if t.Budget <= 0 {
			return nil, fmt.Errorf("team %q: budget must be positive, got %d", name, t.Budget)
		}

		teamCopy := t
		teamCopy.Name = name
		teamCopy.InitialBudget = t.Budget
		teamCopy.Roster = append([]model.RosterEntry(nil), t.Roster...)

		l.teams[name] = &teamCopy
		l.order = append(l.order, name)
		l.initialTotal += t.Budget
	}

	return l, nil
}

// Team returns an isolated copy of a team by name.
func (l *Ledger) Team(name string) (model.Team, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, ok := l.teams[name]
	if !ok {
		return model.Team{}, false
	}
	return copyTeam(t), true
}

// Teams returns isolated copies of every team in rotation order.
func (l *Ledger) Teams() []model.Team {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]model.Team, 0, len(l.order))
	for _, name := range l.order {
		result = append(result, copyTeam(l.teams[name]))
	}
	return result
}

// Order returns the configured rotation order.
func (l *Ledger) Order() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.order...)
}

// SlotsLeft returns the team's open roster slots. Unknown teams have zero.
func (l *Ledger) SlotsLeft(name string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, ok := l.teams[name]
	if !ok {
		return 0
	}
	return t.SlotsLeft(l.maxSlots)
}

// MaxAllowedBid returns the team's bid ceiling under the reserve rule:
// after winning at this amount the team must still afford the minimum bid
// on every remaining empty slot.
//
//	max(0, budget - minBid*max(0, slotsLeft-1))
func (l *Ledger) MaxAllowedBid(name string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, ok := l.teams[name]
	if !ok {
		return 0
	}
	return maxAllowed(t.Budget, t.SlotsLeft(l.maxSlots), l.minBid)
}

func maxAllowed(budget, slotsLeft, minBid int) int {
	reserve := slotsLeft - 1
	if reserve < 0 {
		reserve = 0
	}
	allowed := budget - minBid*reserve
	if allowed < 0 {
		return 0
	}
	return allowed
}

// ApplySale deducts the price and appends the roster entry. The caller
// must already have validated the bid; a violated precondition here is a
// bug upstream and is returned as an error the caller treats as fatal.
func (l *Ledger) ApplySale(team, item, position string, price int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.teams[team]
	if !ok {
		return fmt.Errorf("unknown team %q", team)
	}
	if price > t.Budget {
		return fmt.Errorf("sale price %d exceeds %s budget %d", price, team, t.Budget)
	}
	if len(t.Roster) >= l.maxSlots {
		return fmt.Errorf("roster full for %s (%d slots)", team, l.maxSlots)
	}

	t.Budget -= price
	t.Roster = append(t.Roster, model.RosterEntry{Item: item, Position: position, Price: price})
	return nil
}

// AllRostersFull reports whether every team has filled its roster.
func (l *Ledger) AllRostersFull() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, t := range l.teams {
		if len(t.Roster) < l.maxSlots {
			return false
		}
	}
	return true
}

// TotalSlotsRequired returns teams x roster size, the minimum catalogue
// size for a completable draft.
func (l *Ledger) TotalSlotsRequired() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order) * l.maxSlots
}

// InitialTotal returns the sum of all starting budgets.
func (l *Ledger) InitialTotal() int {
	return l.initialTotal
}

// MinBid returns the configured minimum bid.
func (l *Ledger) MinBid() int {
	return l.minBid
}

// MaxSlots returns the configured roster size.
func (l *Ledger) MaxSlots() int {
	return l.maxSlots
}

func copyTeam(t *model.Team) model.Team {
	teamCopy := *t
	teamCopy.Roster = append([]model.RosterEntry(nil), t.Roster...)
	return teamCopy
}
