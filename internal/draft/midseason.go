package draft

import (
	"context"
	"fmt"
	"strings"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// RunMidSeason drives the mid-season check-in for a finished draft whose
// sales have been replayed into the ledger: each team gets one reflective
// message about its picks, with current scoring pulled from the catalogue.
// No auction state is mutated.
func (s *Scheduler) RunMidSeason(ctx context.Context) error {
	s.logger.Info("mid-season check-in",
		"draft_id", s.draftID,
		"league", s.cfg.League,
		"teams", len(s.order))
	s.announce("Mid-season update! Grab a beer and tell the boys how your picks are doing.")

	for _, team := range s.order {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("mid-season aborted: %w", err)
		}
		snap := s.snapshotFor(team, model.PhaseMidSeason)
		snap.Note = s.scoringNote(team)
		if reply := s.decide(ctx, team, snap); reply != "" {
			s.publish(model.DraftEvent{Kind: model.EventMessage, Speaker: team, Team: team, Detail: reply})
		}
	}

	s.announce("That's all for now, boys. See you back on the ice!")
	return nil
}

// scoringNote summarizes each rostered player's current point total.
func (s *Scheduler) scoringNote(team string) string {
	tm, ok := s.led.Team(team)
	if !ok || len(tm.Roster) == 0 {
		return "(no players)"
	}

	parts := make([]string, 0, len(tm.Roster))
	total := 0.0
	for _, r := range tm.Roster {
		var pts float64
		if it, found := s.cat.Lookup(r.Item); found {
			pts = it.Points
		}
		total += pts
		parts = append(parts, fmt.Sprintf("%s: %.1f pts", r.Item, pts))
	}
	return fmt.Sprintf("%s. Total team points: %.1f.", strings.Join(parts, "; "), total)
}
