package prompt

import (
	"fmt"
	"strings"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// CharLimit is the reply length managers are asked to stay under during the
// live chat. Replies are not truncated; the limit is a prompt instruction.
const CharLimit = 250

// System returns the system message framing one team's decision for the
// phase in the snapshot. Planning phases use the strategist framing, every
// other phase uses the locker-room manager framing.
func System(snap model.Snapshot) string {
	switch snap.Phase {
	case model.PhasePlan, model.PhasePlanUpdate:
		return planningSystem(snap)
	default:
		return managerSystem(snap)
	}
}

// User returns the user message carrying the current state and the
// instructions for the phase in the snapshot.
func User(snap model.Snapshot) string {
	switch snap.Phase {
	case model.PhasePlan:
		return planUser(snap)
	case model.PhasePlanUpdate:
		return planUpdateUser(snap)
	case model.PhaseSoundOff:
		return soundOffUser(snap)
	case model.PhaseWrapUp:
		return wrapUpUser(snap)
	case model.PhaseMidSeason:
		return midSeasonUser(snap)
	default:
		return roundUser(snap)
	}
}

func managerSystem(snap model.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, an AI general manager in %s: a live group-chat auction draft for NHL fantasy hockey.\n",
		snap.Team.Name, leagueName(snap))
	fmt.Fprintf(&b, "Goal: build the strongest %d-player roster and maximize total regular-season points. Positions are not enforced; draft any mix of skaters.\n",
		snap.MaxSlots)
	fmt.Fprintf(&b, "Rules: budget $%d, minimum bid $%d, raises in increments of $%d, and after any winning bid you must keep at least $%d per unfilled roster slot. No duplicate players.\n",
		snap.Team.InitialBudget, snap.MinBid, snap.Increment, snap.MinBid)
	b.WriteString("Talk like you're in a beer-league locker room: chirpy, competitive, PG-13. Playful misdirection about player values is allowed if it helps you win.\n")
	b.WriteString("Only the exact token BID: $NN places a bid. The word PASS declines. Naming a different player while a lot is live counts as a pass.\n")
	fmt.Fprintf(&b, "Keep every message under %d characters.\n", CharLimit)
	if snap.Team.Persona != "" {
		fmt.Fprintf(&b, "Persona hint: %s\n", snap.Team.Persona)
	}
	if len(snap.Opponents) > 0 {
		fmt.Fprintf(&b, "Your opponents: %s.\n", opponentList(snap.Opponents))
	}
	return b.String()
}

func planningSystem(snap model.Snapshot) string {
	var b strings.Builder
	if snap.Team.Model != "" {
		fmt.Fprintf(&b, "You are %s, the %s model serving as general manager in %s, an NHL fantasy auction draft.\n",
			snap.Team.Name, snap.Team.Model, leagueName(snap))
	} else {
		fmt.Fprintf(&b, "You are %s, general manager in %s, an NHL fantasy auction draft.\n",
			snap.Team.Name, leagueName(snap))
	}
	fmt.Fprintf(&b, "Auction rules: budget $%d, minimum bid $%d, increments of $%d, roster of %d skaters. Positions are not enforced and only regular-season points count.\n",
		snap.Team.InitialBudget, snap.MinBid, snap.Increment, snap.MaxSlots)
	b.WriteString("Unspent budget counts against you: finishing with a large surplus means you underbid for talent.\n")
	b.WriteString("Write a private plan you can follow with limited context. Future prompts show you only your own plan document, so include every rule, price ceiling, and target you want your future self to remember.\n")
	b.WriteString("Also craft a light-hearted locker-room persona with a memorable NICKNAME, based on public perceptions of your model.\n")
	b.WriteString("Return your plan in exactly this format:\n")
	b.WriteString("NICKNAME: <short nickname you will use in the chat>\n")
	b.WriteString("PERSONA: <one or two sentences describing your vibe>\n")
	b.WriteString("STRATEGY:\n- <bullet>\n- <bullet>\n- <bullet>\n")
	b.WriteString("PROMPT_CONTEXT: <private rules, formulas, targets, and price ceilings to pass back to your future self>\n")
	b.WriteString("Ready\n")
	return b.String()
}

func roundUser(snap model.Snapshot) string {
	var b strings.Builder
	b.WriteString("ROUND CONTEXT\n")
	fmt.Fprintf(&b, "Phase: %s\n", snap.Phase)
	fmt.Fprintf(&b, "Player up: %s\n", orNone(snap.Item))
	if snap.Position != "" {
		fmt.Fprintf(&b, "Position: %s\n", snap.Position)
	}
	fmt.Fprintf(&b, "Current high bid: $%d\n", snap.HighBid)
	fmt.Fprintf(&b, "High bidder: %s\n", orNone(snap.HighBidder))
	fmt.Fprintf(&b, "Your budget: $%d\n", snap.Team.Budget)
	fmt.Fprintf(&b, "Your roster (%d/%d): %s\n", len(snap.Team.Roster), snap.MaxSlots, rosterLine(snap.Team.Roster))
	fmt.Fprintf(&b, "Taken (recent): %s\n", takenLine(snap.Taken))
	fmt.Fprintf(&b, "Bid history: %s\n", historyLine(snap.History))
	fmt.Fprintf(&b, "Max allowed bid: $%d\n", snap.MaxAllowed)
	if snap.Phase == model.PhaseNominate {
		fmt.Fprintf(&b, "Available players (sample): %s\n", nameList(snap.Available))
	}

	b.WriteString(leagueSummary(snap))

	if snap.PlanDoc != "" {
		b.WriteString("\nYOUR PLAN DOCUMENT (for your eyes only):\n")
		b.WriteString(snap.PlanDoc)
		b.WriteString("\n")
	}
	if snap.Note != "" {
		fmt.Fprintf(&b, "\nNOTE: %s\n", snap.Note)
	}

	if snap.Phase == model.PhaseNominate {
		fmt.Fprintf(&b, "\nREMINDER: Name one available player to put on the block and include BID: $NN as your opening bid. Keep it under %d characters.", CharLimit)
	} else {
		fmt.Fprintf(&b, "\nREMINDER: Reply in under %d characters with a little locker-room color, then either BID: $NN to raise or the word PASS.", CharLimit)
	}
	return b.String()
}

func planUser(snap model.Snapshot) string {
	var b strings.Builder
	b.WriteString("Define your nickname, persona, and draft strategy before the auction starts.\n")
	b.WriteString("Remember that unspent budget is wasted budget: plan to spend nearly all of it on a balanced, high-scoring roster.\n")
	fmt.Fprintf(&b, "Available players (sample): %s\n", nameList(snap.Available))
	b.WriteString("Follow the format described above exactly. End with the word 'Ready'.")
	return b.String()
}

func planUpdateUser(snap model.Snapshot) string {
	var b strings.Builder
	if snap.Note != "" {
		fmt.Fprintf(&b, "UPDATE: %s\n", snap.Note)
	} else {
		b.WriteString("UPDATE: the draft is underway.\n")
	}
	b.WriteString("Use the league state below to adjust your strategy.\n")
	b.WriteString(leagueSummary(snap))
	fmt.Fprintf(&b, "Remaining players (sample): %s\n", nameList(snap.Available))
	b.WriteString("\nRewrite your plan document in the same structured format as before.\n")
	b.WriteString("Do NOT change your NICKNAME or PERSONA; only revise your STRATEGY bullets and PROMPT_CONTEXT.\n")
	b.WriteString("This plan stays private and is passed back only to your future self. End with the word 'Ready'.")
	return b.String()
}

func soundOffUser(snap model.Snapshot) string {
	var b strings.Builder
	b.WriteString("Everyone should be on the chain now. Sound off so the group knows you made it.\n")
	if snap.Team.Model != "" {
		fmt.Fprintf(&b, "Include your model slug in brackets after your nickname, e.g. \"Biscuit [%s] reporting for duty\".\n", snap.Team.Model)
	}
	b.WriteString("One short message. No strategy talk, no bids yet.")
	return b.String()
}

func wrapUpUser(snap model.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The draft is complete. Your final roster: %s.\n", rosterDetail(snap.Team.Roster))
	fmt.Fprintf(&b, "Unspent budget: $%d.\n", snap.Team.Budget)
	b.WriteString("Give the group a closing message: restate your persona, recap the key beats of your draft strategy, and sign off like you're leaving the locker room after a good night.")
	return b.String()
}

func midSeasonUser(snap model.Snapshot) string {
	var b strings.Builder
	b.WriteString("Mid-season check-in. Grab a beer and tell the group how your picks are doing.\n")
	fmt.Fprintf(&b, "Your roster: %s.\n", rosterDetail(snap.Team.Roster))
	if snap.Note != "" {
		fmt.Fprintf(&b, "Current scoring: %s\n", snap.Note)
	}
	fmt.Fprintf(&b, "One message, under %d characters: brag about the picks that hit and own the ones that didn't.", CharLimit)
	return b.String()
}

func leagueSummary(snap model.Snapshot) string {
	var b strings.Builder
	b.WriteString("\nLEAGUE SUMMARY:\n")
	fmt.Fprintf(&b, "%s (you): $%d left, %d slots left, roster: %s\n",
		snap.Team.Name, snap.Team.Budget, snap.Team.SlotsLeft(snap.MaxSlots), rosterLine(snap.Team.Roster))
	for _, o := range snap.Opponents {
		fmt.Fprintf(&b, "%s: $%d left, %d slots left, roster: %s\n",
			o.Name, o.Budget, o.SlotsLeft, rosterLine(o.Roster))
	}
	return b.String()
}

func leagueName(snap model.Snapshot) string {
	if snap.League != "" {
		return snap.League
	}
	return "the league"
}

func opponentList(opps []model.Opponent) string {
	parts := make([]string, len(opps))
	for i, o := range opps {
		if o.Model != "" {
			parts[i] = fmt.Sprintf("%s [%s]", o.Name, o.Model)
		} else {
			parts[i] = o.Name
		}
	}
	return strings.Join(parts, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func rosterLine(roster []model.RosterEntry) string {
	if len(roster) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(roster))
	for i, r := range roster {
		parts[i] = fmt.Sprintf("%s/$%d", r.Item, r.Price)
	}
	return strings.Join(parts, ", ")
}

func rosterDetail(roster []model.RosterEntry) string {
	if len(roster) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(roster))
	for i, r := range roster {
		if r.Position != "" {
			parts[i] = fmt.Sprintf("%s (%s)/$%d", r.Item, r.Position, r.Price)
		} else {
			parts[i] = fmt.Sprintf("%s/$%d", r.Item, r.Price)
		}
	}
	return strings.Join(parts, ", ")
}

func takenLine(sales []model.Sale) string {
	if len(sales) == 0 {
		return "(none)"
	}
	parts := make([]string, len(sales))
	for i, s := range sales {
		parts[i] = fmt.Sprintf("%s ($%d, %s)", s.Item, s.Price, s.Team)
	}
	return strings.Join(parts, ", ")
}

// historyLine renders accepted bids only; rejections are noise to rivals.
func historyLine(hist []model.BidEvent) string {
	var parts []string
	for _, h := range hist {
		if h.Accepted {
			parts = append(parts, fmt.Sprintf("%s $%d", h.Team, h.Amount))
		}
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, ", ")
}

func nameList(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
