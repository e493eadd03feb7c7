package ledger

import (
	"testing"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := New([]model.Team{
		{Name: "Night Shift", Budget: 100},
		{Name: "Suit Up", Budget: 100},
	}, 10, 2)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return l
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		teams    []model.Team
		minBid   int
		maxSlots int
	}{
		{"no teams", nil, 10, 2},
		{"empty team name", []model.Team{{Name: " ", Budget: 100}}, 10, 2},
		{"duplicate team name", []model.Team{{Name: "A", Budget: 100}, {Name: "A", Budget: 100}}, 10, 2},
		{"zero budget", []model.Team{{Name: "A", Budget: 0}}, 10, 2},
		{"negative budget", []model.Team{{Name: "A", Budget: -5}}, 10, 2},
		{"zero min bid", []model.Team{{Name: "A", Budget: 100}}, 0, 2},
		{"zero slots", []model.Team{{Name: "A", Budget: 100}}, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.teams, tt.minBid, tt.maxSlots); err == nil {
				t.Error("expected construction error")
			}
		})
	}
}

func TestNew_SetsInitialBudget(t *testing.T) {
	l := newTestLedger(t)

	tm, ok := l.Team("Night Shift")
	if !ok {
		t.Fatal("team not found")
	}
	if tm.InitialBudget != 100 {
		t.Errorf("InitialBudget = %d, want 100", tm.InitialBudget)
	}
	if l.InitialTotal() != 200 {
		t.Errorf("InitialTotal = %d, want 200", l.InitialTotal())
	}
}

func TestMaxAllowedBid(t *testing.T) {
	tests := []struct {
		name     string
		budget   int
		rostered int // items already on the roster
		maxSlots int
		minBid   int
		want     int
	}{
		{"full budget two slots", 100, 0, 2, 10, 90},
		{"one slot left spends all", 100, 1, 2, 10, 100},
		{"tight budget reserves one slot", 15, 0, 2, 10, 5},
		{"reserve exceeds budget", 5, 0, 2, 10, 0},
		{"no slots left", 100, 2, 2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxAllowed(tt.budget, tt.maxSlots-tt.rostered, tt.minBid)
			if got != tt.want {
				t.Errorf("maxAllowed(%d, %d, %d) = %d, want %d",
					tt.budget, tt.maxSlots-tt.rostered, tt.minBid, got, tt.want)
			}
		})
	}
}

func TestMaxAllowedBid_UnknownTeam(t *testing.T) {
	l := newTestLedger(t)
	if got := l.MaxAllowedBid("Nobody"); got != 0 {
		t.Errorf("MaxAllowedBid(unknown) = %d, want 0", got)
	}
}

func TestMaxAllowedBid_TracksSales(t *testing.T) {
	l := newTestLedger(t)

	// Two open slots: must keep one minimum bid in reserve.
	if got := l.MaxAllowedBid("Night Shift"); got != 90 {
		t.Errorf("MaxAllowedBid = %d, want 90", got)
	}

	if err := l.ApplySale("Night Shift", "A", "", 30); err != nil {
		t.Fatalf("ApplySale: %v", err)
	}

	// One open slot: the whole remaining budget is in play.
	if got := l.MaxAllowedBid("Night Shift"); got != 70 {
		t.Errorf("MaxAllowedBid after sale = %d, want 70", got)
	}
}

func TestApplySale(t *testing.T) {
	l := newTestLedger(t)

	if err := l.ApplySale("Night Shift", "Evan Bouchard", "D", 30); err != nil {
		t.Fatalf("ApplySale failed: %v", err)
	}

	tm, _ := l.Team("Night Shift")
	if tm.Budget != 70 {
		t.Errorf("Budget = %d, want 70", tm.Budget)
	}
	if len(tm.Roster) != 1 {
		t.Fatalf("len(Roster) = %d, want 1", len(tm.Roster))
	}
	if tm.Roster[0].Item != "Evan Bouchard" || tm.Roster[0].Price != 30 {
		t.Errorf("Roster[0] = %+v, want Evan Bouchard at 30", tm.Roster[0])
	}
	if l.SlotsLeft("Night Shift") != 1 {
		t.Errorf("SlotsLeft = %d, want 1", l.SlotsLeft("Night Shift"))
	}
}

func TestApplySale_Preconditions(t *testing.T) {
	t.Run("unknown team", func(t *testing.T) {
		l := newTestLedger(t)
		if err := l.ApplySale("Nobody", "X", "", 10); err == nil {
			t.Error("expected error for unknown team")
		}
	})

	t.Run("over budget", func(t *testing.T) {
		l := newTestLedger(t)
		if err := l.ApplySale("Night Shift", "X", "", 110); err == nil {
			t.Error("expected error for price over budget")
		}
		// State untouched on failure.
		tm, _ := l.Team("Night Shift")
		if tm.Budget != 100 || len(tm.Roster) != 0 {
			t.Errorf("state mutated on failed sale: budget=%d roster=%d", tm.Budget, len(tm.Roster))
		}
	})

	t.Run("roster full", func(t *testing.T) {
		l := newTestLedger(t)
		if err := l.ApplySale("Night Shift", "X", "", 10); err != nil {
			t.Fatalf("sale 1: %v", err)
		}
		if err := l.ApplySale("Night Shift", "Y", "", 10); err != nil {
			t.Fatalf("sale 2: %v", err)
		}
		if err := l.ApplySale("Night Shift", "Z", "", 10); err == nil {
			t.Error("expected error for full roster")
		}
	})
}

func TestBudgetConservation(t *testing.T) {
	l := newTestLedger(t)

	sales := []struct {
		team  string
		item  string
		price int
	}{
		{"Night Shift", "A", 30},
		{"Suit Up", "B", 90},
		{"Night Shift", "C", 70},
		{"Suit Up", "D", 10},
	}
	for _, s := range sales {
		if err := l.ApplySale(s.team, s.item, "", s.price); err != nil {
			t.Fatalf("ApplySale(%s, %s, %d): %v", s.team, s.item, s.price, err)
		}
	}

	spent, remaining := 0, 0
	for _, tm := range l.Teams() {
		spent += tm.Spent()
		remaining += tm.Budget
		if tm.Budget < 0 {
			t.Errorf("%s budget went negative: %d", tm.Name, tm.Budget)
		}
	}
	if spent+remaining != l.InitialTotal() {
		t.Errorf("spent %d + remaining %d != initial %d", spent, remaining, l.InitialTotal())
	}
}

func TestAllRostersFull(t *testing.T) {
	l := newTestLedger(t)

	if l.AllRostersFull() {
		t.Error("fresh ledger reports all rosters full")
	}

	l.ApplySale("Night Shift", "A", "", 10)
	l.ApplySale("Night Shift", "B", "", 10)
	if l.AllRostersFull() {
		t.Error("one full roster should not report all full")
	}

	l.ApplySale("Suit Up", "C", "", 10)
	l.ApplySale("Suit Up", "D", "", 10)
	if !l.AllRostersFull() {
		t.Error("all rosters full not detected")
	}
}

func TestTeams_RotationOrderAndIsolation(t *testing.T) {
	l := newTestLedger(t)

	teams := l.Teams()
	if teams[0].Name != "Night Shift" || teams[1].Name != "Suit Up" {
		t.Errorf("rotation order = [%s, %s], want [Night Shift, Suit Up]", teams[0].Name, teams[1].Name)
	}

	// Mutating the copy must not touch ledger state.
	teams[0].Budget = 1
	teams[0].Roster = append(teams[0].Roster, model.RosterEntry{Item: "X", Price: 99})

	fresh, _ := l.Team("Night Shift")
	if fresh.Budget != 100 || len(fresh.Roster) != 0 {
		t.Errorf("ledger state mutated through copy: budget=%d roster=%d", fresh.Budget, len(fresh.Roster))
	}
}

func TestTotalSlotsRequired(t *testing.T) {
	l := newTestLedger(t)
	if got := l.TotalSlotsRequired(); got != 4 {
		t.Errorf("TotalSlotsRequired = %d, want 4", got)
	}
}
