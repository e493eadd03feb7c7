package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/agent"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/catalogue"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/ledger"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// seedRoster puts a drafted player on a team's books in both the ledger
// and the catalogue, the way the mid-season replay does.
func seedRoster(t *testing.T, cat *catalogue.Catalogue, led *ledger.Ledger, team, item, pos string, price int) {
	t.Helper()
	if !cat.Take(item, team, price) {
		t.Fatalf("Take(%s) failed", item)
	}
	if err := led.ApplySale(team, item, pos, price); err != nil {
		t.Fatalf("ApplySale(%s): %v", item, err)
	}
}

// TestRunMidSeason_CheckIns walks the check-in round: opener, one turn per
// team in draft order with a scoring note in the snapshot, closer.
func TestRunMidSeason_CheckIns(t *testing.T) {
	cat := poolOf(t, "Connor McDavid", "Leon Draisaitl", "Cale Makar", "Quinn Hughes")
	led := leagueOf(t, 10, 2,
		model.Team{Name: "North", Budget: 100},
		model.Team{Name: "South", Budget: 100})
	seedRoster(t, cat, led, "North", "Connor McDavid", "C", 30)
	seedRoster(t, cat, led, "North", "Leon Draisaitl", "C", 40)

	var northSnap, southSnap model.Snapshot
	north := agent.Func(func(_ context.Context, snap model.Snapshot) (string, error) {
		northSnap = snap
		return "Boys are flying. McDavid is carrying us.", nil
	})
	south := agent.Func(func(_ context.Context, snap model.Snapshot) (string, error) {
		southSnap = snap
		return "Slim pickings over here.", nil
	})
	pub := &capturePub{}
	s := mustScheduler(t, Config{Increment: 10, League: "Test League"}, cat, led,
		map[string]agent.Decider{"North": north, "South": south}, pub)

	if err := s.RunMidSeason(context.Background()); err != nil {
		t.Fatalf("RunMidSeason: %v", err)
	}

	if northSnap.Phase != model.PhaseMidSeason {
		t.Errorf("North phase = %s, want %s", northSnap.Phase, model.PhaseMidSeason)
	}
	wantNote := "Connor McDavid: 120.0 pts; Leon Draisaitl: 119.0 pts. Total team points: 239.0."
	if northSnap.Note != wantNote {
		t.Errorf("North note = %q, want %q", northSnap.Note, wantNote)
	}
	if southSnap.Note != "(no players)" {
		t.Errorf("South note = %q, want (no players)", southSnap.Note)
	}

	msgs := pub.byKind(model.EventMessage)
	if len(msgs) != 4 {
		t.Fatalf("messages = %d, want opener + two check-ins + closer", len(msgs))
	}
	if msgs[0].Speaker != Auctioneer ||
		msgs[0].Detail != "Mid-season update! Grab a beer and tell the boys how your picks are doing." {
		t.Errorf("opener = %+v", msgs[0])
	}
	if msgs[1].Speaker != "North" || msgs[1].Team != "North" ||
		msgs[1].Detail != "Boys are flying. McDavid is carrying us." {
		t.Errorf("first check-in = %+v, want North's", msgs[1])
	}
	if msgs[2].Speaker != "South" || msgs[2].Detail != "Slim pickings over here." {
		t.Errorf("second check-in = %+v, want South's", msgs[2])
	}
	if msgs[3].Speaker != Auctioneer ||
		msgs[3].Detail != "That's all for now, boys. See you back on the ice!" {
		t.Errorf("closer = %+v", msgs[3])
	}
}

// TestRunMidSeason_SilentTeams drops blank and failed replies without
// publishing a message for the team.
func TestRunMidSeason_SilentTeams(t *testing.T) {
	cat := poolOf(t, "Connor McDavid", "Leon Draisaitl", "Cale Makar")
	led := leagueOf(t, 10, 1,
		model.Team{Name: "Quiet", Budget: 100},
		model.Team{Name: "Broken", Budget: 100},
		model.Team{Name: "Chatty", Budget: 100})

	quiet := agent.Func(func(_ context.Context, _ model.Snapshot) (string, error) {
		return "   \n", nil
	})
	broken := agent.Func(func(_ context.Context, _ model.Snapshot) (string, error) {
		return "", errors.New("model unavailable")
	})
	chatty := agent.Func(func(_ context.Context, _ model.Snapshot) (string, error) {
		return "Still here.", nil
	})
	pub := &capturePub{}
	s := mustScheduler(t, Config{Increment: 10}, cat, led,
		map[string]agent.Decider{"Quiet": quiet, "Broken": broken, "Chatty": chatty}, pub)

	if err := s.RunMidSeason(context.Background()); err != nil {
		t.Fatalf("RunMidSeason: %v", err)
	}

	msgs := pub.byKind(model.EventMessage)
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want opener + Chatty + closer", len(msgs))
	}
	if msgs[1].Team != "Chatty" || msgs[1].Detail != "Still here." {
		t.Errorf("check-in = %+v, want Chatty's", msgs[1])
	}
}

// TestRunMidSeason_Cancelled aborts between turns when the context dies.
func TestRunMidSeason_Cancelled(t *testing.T) {
	cat := poolOf(t, "Connor McDavid", "Leon Draisaitl")
	led := leagueOf(t, 10, 1,
		model.Team{Name: "North", Budget: 100},
		model.Team{Name: "South", Budget: 100})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pub := &capturePub{}
	s := mustScheduler(t, Config{Increment: 10}, cat, led,
		map[string]agent.Decider{"North": agent.NewScripted(), "South": agent.NewScripted()}, pub)

	err := s.RunMidSeason(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("RunMidSeason error = %v, want context.Canceled", err)
	}
	if len(pub.byKind(model.EventMessage)) != 1 {
		t.Errorf("only the opener should have gone out, got %d messages", len(pub.byKind(model.EventMessage)))
	}
}
