package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/agent"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/catalogue"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/extract"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/ledger"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/metrics"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// Auctioneer aliases the engine's speaker name for announcements.
const Auctioneer = model.Auctioneer

// ErrStalled reports a draft that stopped progressing: two full nomination
// cycles passed with every turn ending in a forfeit or a no-sale. Without
// this guard a pool of agents that never produces a usable nomination
// would keep the engine spinning forever.
var ErrStalled = errors.New("draft stalled")

// Defaults applied when Config leaves a knob unset.
const (
	DefaultNominationAttempts = 2
	DefaultAvailableSample    = 30
	DefaultTakenSample        = 15
)

// Config carries the flow knobs for a draft run. Money rules beyond the
// increment (minimum bid, budgets, roster size) live in the ledger.
type Config struct {
	Increment          int    // bid step, must be positive
	SeedItem           string // first item on the block, "" for a free first nomination
	NominationAttempts int    // extraction attempts per nomination turn
	PlanUpdateEvery    int    // sales between plan refreshes, 0 disables
	Planning           bool   // collect plan documents before the first lot
	Banter             bool   // sound-off and wrap-up chatter
	AvailableSample    int    // available names shown per prompt
	TakenSample        int    // recent sales shown per prompt
	League             string // label carried into announcements and results
}

// Publisher receives every draft event in sequence order. Publish is called
// from the engine loop and must not block; slow consumers buffer or drop.
type Publisher interface {
	Publish(ev model.DraftEvent)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// WithRand sets the RNG used to shuffle bidding order. A fixed-seed source
// with scripted agents replays an identical draft. Defaults to a
// time-seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scheduler) { s.rng = rng }
}

// WithPublisher sets the event sink. Without one, events are counted but
// not delivered anywhere.
func WithPublisher(pub Publisher) Option {
	return func(s *Scheduler) { s.pub = pub }
}

// WithCounters sets shared metric counters. Defaults to a private set.
func WithCounters(c *metrics.Counters) Option {
	return func(s *Scheduler) { s.counters = c }
}

// Scheduler runs one complete draft. It is the only writer of draft state:
// lot, ledger, and catalogue mutations all happen on the Run goroutine.
type Scheduler struct {
	cfg    Config
	cat    *catalogue.Catalogue
	led    *ledger.Ledger
	agents map[string]agent.Decider
	ex     extract.Extractor

	logger   *slog.Logger
	rng      *rand.Rand
	pub      Publisher
	counters *metrics.Counters

	draftID  uuid.UUID
	order    []string
	rotation int
	seq      int64
	lot      *Lot
	sales    []model.Sale
	plans    map[string]string
}

// New validates the draft setup and returns a ready scheduler. Fatal
// misconfiguration (no extractor, non-positive increment, a catalogue
// smaller than the total roster slots, a team without an agent) is an
// error here, never mid-draft.
func New(cfg Config, cat *catalogue.Catalogue, led *ledger.Ledger, agents map[string]agent.Decider, ex extract.Extractor, opts ...Option) (*Scheduler, error) {
	if cat == nil || led == nil || ex == nil {
		return nil, errors.New("draft: catalogue, ledger, and extractor are required")
	}
	if cfg.Increment <= 0 {
		return nil, fmt.Errorf("draft: increment must be positive, got %d", cfg.Increment)
	}
	if cat.Size() < led.TotalSlotsRequired() {
		return nil, fmt.Errorf("draft: catalogue has %d players for %d required roster slots", cat.Size(), led.TotalSlotsRequired())
	}
	order := led.Order()
	deciders := make(map[string]agent.Decider, len(agents))
	for _, team := range order {
		d, ok := agents[team]
		if !ok || d == nil {
			return nil, fmt.Errorf("draft: no agent for team %q", team)
		}
		deciders[team] = d
	}
	if cfg.NominationAttempts <= 0 {
		cfg.NominationAttempts = DefaultNominationAttempts
	}
	if cfg.AvailableSample <= 0 {
		cfg.AvailableSample = DefaultAvailableSample
	}
	if cfg.TakenSample <= 0 {
		cfg.TakenSample = DefaultTakenSample
	}

	s := &Scheduler{
		cfg:     cfg,
		cat:     cat,
		led:     led,
		agents:  deciders,
		ex:      ex,
		draftID: uuid.New(),
		order:   order,
		plans:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.counters == nil {
		s.counters = metrics.NewCounters()
	}
	s.lot = NewLot(led.MinBid(), cfg.Increment, led)
	return s, nil
}

// DraftID returns the run's unique identifier.
func (s *Scheduler) DraftID() uuid.UUID { return s.draftID }

// Counters returns the run's metric counters.
func (s *Scheduler) Counters() *metrics.Counters { return s.counters }

// Plans returns a copy of each team's current plan document. Call after
// Run returns; Run mutates the plans as teams revise them.
func (s *Scheduler) Plans() map[string]string {
	plans := make(map[string]string, len(s.plans))
	for team, doc := range s.plans {
		plans[team] = doc
	}
	return plans
}

// Run drives the draft to completion: every roster filled, or ctx canceled.
// The returned result is complete and settled; a canceled draft returns an
// error with no result.
func (s *Scheduler) Run(ctx context.Context) (*model.Result, error) {
	started := time.Now()
	s.logger.Info("draft starting",
		"draft_id", s.draftID,
		"league", s.cfg.League,
		"teams", len(s.order),
		"roster_size", s.led.MaxSlots(),
		"players", s.cat.Size())
	s.announce(fmt.Sprintf("Welcome to the %s auction draft: %d teams, %d roster spots each, $%d in total budgets. Minimum bid $%d, bidding in $%d steps.",
		s.cfg.League, len(s.order), s.led.MaxSlots(), s.led.InitialTotal(), s.led.MinBid(), s.cfg.Increment))

	if s.cfg.Planning {
		s.planningPhase(ctx)
	}
	if s.cfg.Banter {
		s.soundOff(ctx)
	}

	seeded := false
	stalls := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("draft aborted: %w", err)
		}
		if s.led.AllRostersFull() {
			break
		}
		nominator, ok := s.nextNominator()
		if !ok {
			break
		}
		var nom nomination
		var nominated bool
		if !seeded && s.cfg.SeedItem != "" {
			nom, nominated = s.seedNomination(nominator)
			seeded = true
		} else {
			nom, nominated = s.solicitNomination(ctx, nominator)
		}
		if !nominated {
			s.advancePast(nominator)
			stalls++
			if stalls >= 2*len(s.order) {
				return nil, fmt.Errorf("%w: %d consecutive nomination turns without a sale", ErrStalled, stalls)
			}
			continue
		}
		winner, err := s.runLot(ctx, nominator, nom)
		if err != nil {
			return nil, err
		}
		if winner == "" {
			s.advancePast(nominator)
			stalls++
			if stalls >= 2*len(s.order) {
				return nil, fmt.Errorf("%w: %d consecutive nomination turns without a sale", ErrStalled, stalls)
			}
			continue
		}
		stalls = 0
		s.setNominator(winner)
		if s.cfg.Planning && s.cfg.PlanUpdateEvery > 0 &&
			len(s.sales)%s.cfg.PlanUpdateEvery == 0 && !s.led.AllRostersFull() {
			s.updatePlans(ctx)
		}
	}

	if s.cfg.Banter {
		s.wrapUp(ctx)
	}
	res := s.buildResult(started, time.Now())
	s.logger.Info("draft complete",
		"draft_id", s.draftID,
		"sales", len(s.sales),
		"duration", time.Since(started).Round(time.Millisecond))
	return res, nil
}

// nomination is an accepted nomination ready to open as a lot.
type nomination struct {
	item    model.Item
	opening int
	detail  string
}

// seedNomination opens the configured first item at the minimum bid on the
// first nominator's behalf, substituting the first available player if the
// seed cannot be resolved.
func (s *Scheduler) seedNomination(nominator string) (nomination, bool) {
	name := s.cfg.SeedItem
	item, ok := s.cat.Resolve(name)
	if !ok {
		item, ok = s.cat.Resolve(stripPosSuffix(name))
	}
	if !ok {
		sub, any := s.cat.FirstAvailable()
		if !any {
			return nomination{}, false
		}
		s.logger.Warn("seed item unavailable, substituting", "seed", name, "substitute", sub.Name)
		s.announce(fmt.Sprintf("%s isn't on the board. First up instead: %s.", name, displayName(sub)))
		item = sub
	}
	s.announce(fmt.Sprintf("First on the block: %s, opening at the $%d minimum for %s.",
		displayName(item), s.led.MinBid(), nominator))
	return nomination{item: item, opening: s.led.MinBid(), detail: "seed lot"}, true
}

// solicitNomination asks the nominator to name a player, giving them a
// fixed number of extraction attempts before the turn is forfeited. A
// proposal that resolves to an already-drafted player is not charged as an
// attempt; the first available player is substituted instead.
func (s *Scheduler) solicitNomination(ctx context.Context, nominator string) (nomination, bool) {
	note := ""
	for i := 0; i < s.cfg.NominationAttempts; i++ {
		if ctx.Err() != nil {
			return nomination{}, false
		}
		snap := s.snapshotFor(nominator, model.PhaseNominate)
		snap.Note = note
		reply := s.decide(ctx, nominator, snap)
		if reply != "" {
			s.publish(model.DraftEvent{Kind: model.EventMessage, Speaker: nominator, Team: nominator, Detail: reply})
		}
		name, ok := s.ex.Nominee(reply, s.cat.Available())
		if !ok {
			note = "Your last reply named no available player. Nominate one player by full name."
			continue
		}
		item, found := s.cat.Resolve(name)
		if !found {
			prior, known := s.cat.Lookup(name)
			if !known || !prior.Drafted() {
				note = fmt.Sprintf("%q is not in this player pool. Nominate an available player by full name.", name)
				continue
			}
			// Stale view: they proposed someone already sold. Substitute
			// rather than burn the turn.
			sub, any := s.cat.FirstAvailable()
			if !any {
				return nomination{}, false
			}
			s.logger.Warn("nominated player already drafted, substituting",
				"team", nominator, "proposed", name, "substitute", sub.Name)
			s.announce(fmt.Sprintf("%s is already off the board. Next up instead: %s.", name, displayName(sub)))
			item = sub
		}
		opening := s.led.MinBid()
		if raw, has := s.ex.Bid(reply); has {
			if v := raw - raw%s.cfg.Increment; v >= s.led.MinBid() {
				opening = v
			}
		}
		return nomination{item: item, opening: opening, detail: reply}, true
	}
	s.logger.Warn("nomination forfeited", "team", nominator, "attempts", s.cfg.NominationAttempts)
	s.announce(fmt.Sprintf("%s couldn't put a name forward. Moving on.", nominator))
	return nomination{}, false
}

// runLot opens the lot, applies the opening bid, runs bidding rounds, and
// settles the outcome. Returns the winning team, or "" on a no-sale. An
// error means settlement itself failed, which is a bug, not a draft event.
func (s *Scheduler) runLot(ctx context.Context, nominator string, nom nomination) (string, error) {
	s.lot.Open(nom.item)
	s.counters.LotsOpened.Add(1)
	s.publish(model.DraftEvent{
		Kind:    model.EventNomination,
		Speaker: nominator,
		Team:    nominator,
		Item:    nom.item.Name,
		Amount:  nom.opening,
		Detail:  nom.detail,
	})
	s.logger.Info("lot open",
		"item", nom.item.Name,
		"position", nom.item.Position,
		"nominator", nominator,
		"opening", nom.opening)

	ok, reason := s.lot.ApplyBid(nominator, nom.opening)
	if !ok && nom.opening != s.led.MinBid() {
		s.logger.Warn("opening bid rejected, falling back to minimum",
			"team", nominator, "amount", nom.opening, "reason", string(reason))
		ok, reason = s.lot.ApplyBid(nominator, s.led.MinBid())
	}
	if ok {
		s.counters.BidsAccepted.Add(1)
		s.publish(model.DraftEvent{
			Kind:    model.EventBidAccepted,
			Speaker: nominator,
			Team:    nominator,
			Item:    nom.item.Name,
			Amount:  s.lot.HighBid(),
		})
	} else {
		s.counters.BidsRejected.Add(1)
		s.publish(model.DraftEvent{
			Kind:    model.EventBidRejected,
			Speaker: nominator,
			Team:    nominator,
			Item:    nom.item.Name,
			Amount:  nom.opening,
			Detail:  string(reason),
		})
		s.logger.Warn("nominator cannot open the bidding", "team", nominator, "reason", string(reason))
	}

	s.biddingRounds(ctx)

	sale, sold := s.lot.Sell()
	if !sold {
		s.counters.NoSales.Add(1)
		s.publish(model.DraftEvent{
			Kind:    model.EventNoSale,
			Speaker: Auctioneer,
			Item:    nom.item.Name,
		})
		s.logger.Warn("no sale", "item", nom.item.Name)
		return "", nil
	}
	if err := s.led.ApplySale(sale.Team, sale.Item, sale.Position, sale.Price); err != nil {
		return "", fmt.Errorf("settle %s to %s: %w", sale.Item, sale.Team, err)
	}
	s.cat.Take(sale.Item, sale.Team, sale.Price)
	s.sales = append(s.sales, sale)
	s.counters.Sales.Add(1)
	s.publish(model.DraftEvent{
		Kind:    model.EventSale,
		Speaker: Auctioneer,
		Team:    sale.Team,
		Item:    sale.Item,
		Amount:  sale.Price,
		Detail:  sale.Position,
	})
	s.logger.Info("sold", "item", sale.Item, "team", sale.Team, "price", sale.Price)
	return sale.Team, nil
}

// biddingRounds asks open-slot teams for raises until a full round passes
// with no accepted bid. Teams retire from the lot when they pass, fail to
// parse, mention another player, or have a bid rejected; the standing high
// bidder sits out but rejoins the pool the moment they are outbid.
func (s *Scheduler) biddingRounds(ctx context.Context) {
	out := make(map[string]bool)
	for {
		round := s.eligibleBidders(out)
		if len(round) == 0 {
			return
		}
		s.rng.Shuffle(len(round), func(i, j int) { round[i], round[j] = round[j], round[i] })
		accepted := 0
		for _, team := range round {
			if ctx.Err() != nil {
				return
			}
			reply := s.decide(ctx, team, s.snapshotFor(team, model.PhaseBid))
			if s.takeBidTurn(team, reply, out) {
				accepted++
			}
		}
		if accepted == 0 {
			return
		}
	}
}

// eligibleBidders returns, in rotation order, every team that may be asked
// this round: open slots, not retired from the lot, not holding the high
// bid.
func (s *Scheduler) eligibleBidders(out map[string]bool) []string {
	var teams []string
	for _, name := range s.order {
		if out[name] || name == s.lot.HighBidder() {
			continue
		}
		if s.led.SlotsLeft(name) == 0 {
			continue
		}
		teams = append(teams, name)
	}
	return teams
}

// takeBidTurn applies one team's reply to the open lot and reports whether
// it produced an accepted bid. Any other outcome retires the team for the
// remainder of the lot.
func (s *Scheduler) takeBidTurn(team, reply string, out map[string]bool) bool {
	if reply != "" {
		s.publish(model.DraftEvent{Kind: model.EventMessage, Speaker: team, Team: team, Detail: reply})
	}
	item := s.lot.Item().Name
	if raw, has := s.ex.Bid(reply); has {
		amount := raw - raw%s.cfg.Increment
		displaced := s.lot.HighBidder()
		ok, reason := s.lot.ApplyBid(team, amount)
		if ok {
			s.counters.BidsAccepted.Add(1)
			s.publish(model.DraftEvent{
				Kind:    model.EventBidAccepted,
				Speaker: team,
				Team:    team,
				Item:    item,
				Amount:  amount,
			})
			s.logger.Info("new high bid", "item", item, "team", team, "amount", amount, "displaced", displaced)
			return true
		}
		out[team] = true
		s.counters.BidsRejected.Add(1)
		s.publish(model.DraftEvent{
			Kind:    model.EventBidRejected,
			Speaker: team,
			Team:    team,
			Item:    item,
			Amount:  amount,
			Detail:  string(reason),
		})
		s.logger.Info("bid rejected", "item", item, "team", team, "amount", amount, "reason", string(reason))
		return false
	}

	// No bid token. Mentioning a different player or nomination talk is an
	// implicit pass, as is anything unparseable.
	out[team] = true
	s.counters.Passes.Add(1)
	detail := ""
	if name, ok := s.ex.Nominee(reply, s.cat.Available()); ok && !strings.EqualFold(name, item) {
		detail = "mentioned " + name
	} else if strings.Contains(strings.ToLower(reply), "nominate") {
		detail = "nomination talk"
	}
	s.publish(model.DraftEvent{
		Kind:    model.EventPass,
		Speaker: team,
		Team:    team,
		Item:    item,
		Detail:  detail,
	})
	return false
}

// nextNominator finds the first team at or after the rotation pointer with
// an open roster slot and parks the pointer on it.
func (s *Scheduler) nextNominator() (string, bool) {
	n := len(s.order)
	for i := 0; i < n; i++ {
		idx := (s.rotation + i) % n
		if s.led.SlotsLeft(s.order[idx]) > 0 {
			s.rotation = idx
			return s.order[idx], true
		}
	}
	return "", false
}

// advancePast moves the rotation pointer one position past the given team.
func (s *Scheduler) advancePast(team string) {
	for i, name := range s.order {
		if name == team {
			s.rotation = (i + 1) % len(s.order)
			return
		}
	}
}

// setNominator parks the rotation pointer on the given team, making them
// the next nominator.
func (s *Scheduler) setNominator(team string) {
	for i, name := range s.order {
		if name == team {
			s.rotation = i
			return
		}
	}
}

func (s *Scheduler) planningPhase(ctx context.Context) {
	s.logger.Info("collecting draft plans", "teams", len(s.order))
	for _, team := range s.order {
		if ctx.Err() != nil {
			return
		}
		reply := s.decide(ctx, team, s.snapshotFor(team, model.PhasePlan))
		if reply == "" {
			s.logger.Warn("no plan received", "team", team)
			continue
		}
		s.plans[team] = reply
		s.publish(model.DraftEvent{Kind: model.EventPlan, Speaker: team, Team: team, Detail: reply})
	}
}

func (s *Scheduler) soundOff(ctx context.Context) {
	s.announce("Managers, sound off: introduce yourselves before the first nomination.")
	for _, team := range s.order {
		if ctx.Err() != nil {
			return
		}
		if reply := s.decide(ctx, team, s.snapshotFor(team, model.PhaseSoundOff)); reply != "" {
			s.publish(model.DraftEvent{Kind: model.EventMessage, Speaker: team, Team: team, Detail: reply})
		}
	}
}

func (s *Scheduler) updatePlans(ctx context.Context) {
	s.announce(fmt.Sprintf("Quick break at %d players sold while managers revise their plans.", len(s.sales)))
	for _, team := range s.order {
		if ctx.Err() != nil {
			return
		}
		snap := s.snapshotFor(team, model.PhasePlanUpdate)
		snap.Note = fmt.Sprintf("%d players have been sold so far.", len(s.sales))
		reply := s.decide(ctx, team, snap)
		if reply == "" {
			continue
		}
		s.plans[team] = reply
		s.publish(model.DraftEvent{Kind: model.EventPlan, Speaker: team, Team: team, Detail: reply})
	}
}

func (s *Scheduler) wrapUp(ctx context.Context) {
	s.announce("That's the draft! Managers, any final words?")
	for _, team := range s.order {
		if ctx.Err() != nil {
			return
		}
		if reply := s.decide(ctx, team, s.snapshotFor(team, model.PhaseWrapUp)); reply != "" {
			s.publish(model.DraftEvent{Kind: model.EventMessage, Speaker: team, Team: team, Detail: reply})
		}
	}
}

// decide asks one team's agent for a reply. Errors and missing agents
// degrade to an empty reply, which every caller treats as a pass.
func (s *Scheduler) decide(ctx context.Context, team string, snap model.Snapshot) string {
	d, ok := s.agents[team]
	if !ok {
		return ""
	}
	s.counters.AgentCalls.Add(1)
	reply, err := d.Decide(ctx, snap)
	if err != nil {
		s.counters.AgentErrors.Add(1)
		s.logger.Warn("decision failed, treating as pass",
			"team", team, "phase", string(snap.Phase), "error", err)
		return ""
	}
	return strings.TrimSpace(reply)
}

// snapshotFor assembles the draft as seen by one team right now.
func (s *Scheduler) snapshotFor(team string, phase model.Phase) model.Snapshot {
	tm, _ := s.led.Team(team)
	snap := model.Snapshot{
		Phase:      phase,
		League:     s.cfg.League,
		Team:       tm,
		MinBid:     s.led.MinBid(),
		Increment:  s.cfg.Increment,
		MaxSlots:   s.led.MaxSlots(),
		MaxAllowed: s.led.MaxAllowedBid(team),
		Available:  headOf(s.cat.Available(), s.cfg.AvailableSample),
		Taken:      tailOf(s.sales, s.cfg.TakenSample),
		PlanDoc:    s.plans[team],
	}
	for _, name := range s.order {
		if name == team {
			continue
		}
		if opp, ok := s.led.Team(name); ok {
			snap.Opponents = append(snap.Opponents, model.Opponent{
				Name:      opp.Name,
				Model:     opp.Model,
				Budget:    opp.Budget,
				SlotsLeft: opp.SlotsLeft(s.led.MaxSlots()),
				Roster:    opp.Roster,
			})
		}
	}
	if s.lot.State() == LotOpen {
		item := s.lot.Item()
		snap.Item = item.Name
		snap.Position = item.Position
		snap.HighBid = s.lot.HighBid()
		snap.HighBidder = s.lot.HighBidder()
		snap.History = s.lot.History()
	}
	return snap
}

func (s *Scheduler) publish(ev model.DraftEvent) {
	s.seq++
	ev.EventID = uuid.New()
	ev.DraftID = s.draftID
	ev.Seq = s.seq
	ev.TS = time.Now().UnixMicro()
	s.counters.EventsPublished.Add(1)
	if s.pub != nil {
		s.pub.Publish(ev)
	}
}

func (s *Scheduler) announce(text string) {
	s.publish(model.DraftEvent{Kind: model.EventMessage, Speaker: Auctioneer, Detail: text})
}

func (s *Scheduler) buildResult(started, finished time.Time) *model.Result {
	res := &model.Result{
		DraftID:    s.draftID,
		League:     s.cfg.League,
		StartedTS:  started.UnixMicro(),
		FinishedTS: finished.UnixMicro(),
	}
	for _, tm := range s.led.Teams() {
		res.Teams = append(res.Teams, model.TeamResult{
			Name:   tm.Name,
			Budget: tm.Budget,
			Spent:  tm.Spent(),
			Roster: tm.Roster,
		})
	}
	for _, it := range s.cat.Items() {
		res.Items = append(res.Items, model.ItemResult{
			Name:      it.Name,
			Position:  it.Position,
			DraftedBy: it.DraftedBy,
			Price:     it.Price,
		})
	}
	return res
}

var posSuffixRE = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// stripPosSuffix drops a trailing parenthesized position from a display
// name, so "Evan Bouchard (D)" resolves against the catalogue name.
func stripPosSuffix(name string) string {
	return strings.TrimSpace(posSuffixRE.ReplaceAllString(name, ""))
}

func displayName(it model.Item) string {
	if it.Position == "" {
		return it.Name
	}
	return it.Name + " (" + it.Position + ")"
}

func headOf(names []string, n int) []string {
	if n <= 0 || n >= len(names) {
		return names
	}
	return names[:n]
}

func tailOf(sales []model.Sale, n int) []model.Sale {
	if n <= 0 || n >= len(sales) {
		return sales
	}
	out := make([]model.Sale, n)
	copy(out, sales[len(sales)-n:])
	return out
}
