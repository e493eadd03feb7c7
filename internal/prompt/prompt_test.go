package prompt

import (
	"strings"
	"testing"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

func bidSnapshot() model.Snapshot {
	return model.Snapshot{
		Phase:  model.PhaseBid,
		League: "GDS AI Hockey League",
		Team: model.Team{
			Name:          "North",
			Model:         "openai/gpt-4o",
			Persona:       "Analytics die-hard, allergic to overpays.",
			Budget:        70,
			InitialBudget: 100,
			Roster:        []model.RosterEntry{{Item: "Cale Makar", Position: "D", Price: 30}},
		},
		MinBid:     10,
		Increment:  10,
		MaxSlots:   2,
		Item:       "Connor McDavid",
		Position:   "C",
		HighBid:    30,
		HighBidder: "South",
		MaxAllowed: 70,
		History: []model.BidEvent{
			{Team: "North", Amount: 10, Accepted: true},
			{Team: "South", Amount: 20, Accepted: true},
			{Team: "North", Amount: 25, Accepted: false, Reason: model.ReasonIncrement},
			{Team: "South", Amount: 30, Accepted: true},
		},
		Available: []string{"Nathan MacKinnon", "David Pastrnak"},
		Taken:     []model.Sale{{Item: "Cale Makar", Position: "D", Team: "North", Price: 30}},
		Opponents: []model.Opponent{
			{Name: "South", Model: "x-ai/grok-4", Budget: 60, SlotsLeft: 2},
		},
		PlanDoc: "NICKNAME: Chilly\nSTRATEGY:\n- stay patient",
	}
}

func wantContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(got, w) {
			t.Errorf("output missing %q\nfull output:\n%s", w, got)
		}
	}
}

// TestSystem tests the system message builders.
func TestSystem(t *testing.T) {
	t.Run("manager framing for bid phase", func(t *testing.T) {
		got := System(bidSnapshot())
		wantContains(t, got,
			"You are North",
			"GDS AI Hockey League",
			"2-player roster",
			"budget $100",
			"minimum bid $10",
			"increments of $10",
			"BID: $NN",
			"PASS",
			"under 250 characters",
			"Persona hint: Analytics die-hard, allergic to overpays.",
			"South [x-ai/grok-4]",
		)
	})

	t.Run("strategist framing for plan phase", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhasePlan
		got := System(snap)
		wantContains(t, got,
			"the openai/gpt-4o model",
			"NICKNAME:",
			"PERSONA:",
			"STRATEGY:",
			"PROMPT_CONTEXT:",
			"Ready",
		)
		if strings.Contains(got, "BID: $NN") {
			t.Error("planning system should not mention the bid token")
		}
	})

	t.Run("plan update uses the strategist framing too", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhasePlanUpdate
		if got := System(snap); !strings.Contains(got, "PROMPT_CONTEXT:") {
			t.Errorf("plan update system missing structured format:\n%s", got)
		}
	})

	t.Run("no league name falls back cleanly", func(t *testing.T) {
		snap := bidSnapshot()
		snap.League = ""
		if got := System(snap); !strings.Contains(got, "in the league:") {
			t.Errorf("expected fallback league phrasing, got:\n%s", got)
		}
	})
}

// TestUser_Round tests the bid and nominate user messages.
func TestUser_Round(t *testing.T) {
	t.Run("bid phase", func(t *testing.T) {
		got := User(bidSnapshot())
		wantContains(t, got,
			"ROUND CONTEXT",
			"Phase: BID",
			"Player up: Connor McDavid",
			"Position: C",
			"Current high bid: $30",
			"High bidder: South",
			"Your budget: $70",
			"Your roster (1/2): Cale Makar/$30",
			"Taken (recent): Cale Makar ($30, North)",
			"Bid history: North $10, South $20, South $30",
			"Max allowed bid: $70",
			"LEAGUE SUMMARY:",
			"North (you): $70 left, 1 slots left, roster: Cale Makar/$30",
			"South: $60 left, 2 slots left, roster: (empty)",
			"YOUR PLAN DOCUMENT (for your eyes only):",
			"NICKNAME: Chilly",
			"REMINDER:",
			"PASS",
		)
		if strings.Contains(got, "Available players") {
			t.Error("bid phase should not list available players")
		}
		if strings.Contains(got, "$25") {
			t.Error("rejected bids should not appear in the history line")
		}
	})

	t.Run("nominate phase lists available players", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhaseNominate
		snap.Item = ""
		snap.Position = ""
		snap.HighBid = 0
		snap.HighBidder = ""
		snap.History = nil
		got := User(snap)
		wantContains(t, got,
			"Phase: NOMINATE",
			"Player up: none",
			"High bidder: none",
			"Bid history: (none)",
			"Available players (sample): Nathan MacKinnon, David Pastrnak",
			"opening bid",
		)
	})

	t.Run("retry note is surfaced", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhaseNominate
		snap.Note = "Your last reply named no available player."
		if got := User(snap); !strings.Contains(got, "NOTE: Your last reply named no available player.") {
			t.Errorf("note missing from output:\n%s", got)
		}
	})

	t.Run("empty roster and no sales", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Team.Roster = nil
		snap.Taken = nil
		snap.PlanDoc = ""
		got := User(snap)
		wantContains(t, got,
			"Your roster (0/2): (empty)",
			"Taken (recent): (none)",
		)
		if strings.Contains(got, "YOUR PLAN DOCUMENT") {
			t.Error("plan document header should be omitted when there is no plan")
		}
	})
}

// TestUser_Phases tests the non-auction user messages.
func TestUser_Phases(t *testing.T) {
	t.Run("plan", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhasePlan
		got := User(snap)
		wantContains(t, got,
			"Available players (sample): Nathan MacKinnon, David Pastrnak",
			"End with the word 'Ready'.",
		)
	})

	t.Run("plan update", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhasePlanUpdate
		snap.Note = "10 players have been sold so far."
		got := User(snap)
		wantContains(t, got,
			"UPDATE: 10 players have been sold so far.",
			"LEAGUE SUMMARY:",
			"Do NOT change your NICKNAME or PERSONA",
			"End with the word 'Ready'.",
		)
	})

	t.Run("sound off", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhaseSoundOff
		got := User(snap)
		wantContains(t, got,
			"Sound off",
			"[openai/gpt-4o]",
			"No strategy talk, no bids yet.",
		)
	})

	t.Run("wrap up", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhaseWrapUp
		got := User(snap)
		wantContains(t, got,
			"The draft is complete.",
			"Cale Makar (D)/$30",
			"Unspent budget: $70.",
			"closing message",
		)
	})

	t.Run("mid season", func(t *testing.T) {
		snap := bidSnapshot()
		snap.Phase = model.PhaseMidSeason
		snap.Note = "Cale Makar: 64.0 pts; total 64.0 pts."
		got := User(snap)
		wantContains(t, got,
			"Mid-season check-in.",
			"Cale Makar (D)/$30",
			"Current scoring: Cale Makar: 64.0 pts; total 64.0 pts.",
		)
	})
}
