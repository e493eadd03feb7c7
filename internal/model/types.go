package model

import "github.com/google/uuid"

// -----------------------------------------------------------------------------
// Catalogue Types
// -----------------------------------------------------------------------------

// Item represents one draftable player in the catalogue.
type Item struct {
	Name      string  // Primary key, canonical case-sensitive form
	Position  string  // Optional position tag (e.g., "C", "D"); flavor only
	Points    float64 // Projected/current season points, 0 if unknown
	DraftedBy string  // Winning team name, empty while available
	Price     int     // Sale price, 0 while available
}

// Drafted reports whether the item has been sold.
func (i Item) Drafted() bool {
	return i.DraftedBy != ""
}

// -----------------------------------------------------------------------------
// Team Types
// -----------------------------------------------------------------------------

// RosterEntry is one acquired item as recorded on a team's roster.
type RosterEntry struct {
	Item     string // Item name
	Position string // Item position at time of sale
	Price    int    // Sale price
}

// Team represents one bidding franchise.
type Team struct {
	Name          string        // Primary key
	Model         string        // LLM slug for the boundary layer; unused by the core
	Persona       string        // Prompt persona; unused by the core
	Budget        int           // Remaining budget, monotonically non-increasing
	InitialBudget int           // Starting budget
	Roster        []RosterEntry // Ordered acquisitions, max length = configured slots
}

// SlotsLeft returns the number of open roster slots given the configured cap.
func (t Team) SlotsLeft(maxSlots int) int {
	left := maxSlots - len(t.Roster)
	if left < 0 {
		return 0
	}
	return left
}

// Spent returns the total spent across the roster.
func (t Team) Spent() int {
	total := 0
	for _, r := range t.Roster {
		total += r.Price
	}
	return total
}

// -----------------------------------------------------------------------------
// Auction Types
// -----------------------------------------------------------------------------

// Phase identifies what kind of decision is being solicited from an agent.
type Phase string

const (
	PhaseNominate   Phase = "NOMINATE"
	PhaseBid        Phase = "BID"
	PhasePlan       Phase = "PLAN"
	PhaseSoundOff   Phase = "SOUND_OFF"
	PhasePlanUpdate Phase = "PLAN_UPDATE"
	PhaseWrapUp     Phase = "WRAP_UP"
	PhaseMidSeason  Phase = "MID_SEASON"
)

// Reason is a machine-checkable bid rejection reason.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonNoLot      Reason = "no lot open"
	ReasonIncrement  Reason = "invalid increment/minimum"
	ReasonOverBudget Reason = "over budget"
	ReasonReserve    Reason = "reserve exceeded"
	ReasonSelfRaise  Reason = "already highest bidder"
)

// BidEvent is one entry in a lot's ordered, append-only bid history.
type BidEvent struct {
	Team     string // Bidding team
	Amount   int    // Proposed amount
	Accepted bool   // Whether the bid became the standing high bid
	Reason   Reason // Rejection reason, ReasonNone when accepted
}

// Sale is the resolution of one lot.
type Sale struct {
	Item     string // Sold item name
	Position string // Item position
	Team     string // Winning team
	Price    int    // Final price
}

// -----------------------------------------------------------------------------
// Event Feed Types
// -----------------------------------------------------------------------------

// Auctioneer is the speaker name on engine announcements.
const Auctioneer = "AUCTIONEER"

// EventKind classifies a draft event.
type EventKind string

const (
	EventNomination  EventKind = "nomination"
	EventBidAccepted EventKind = "bid_accepted"
	EventBidRejected EventKind = "bid_rejected"
	EventPass        EventKind = "pass"
	EventSale        EventKind = "sale"
	EventNoSale      EventKind = "no_sale"
	EventMessage     EventKind = "message"
	EventPlan        EventKind = "plan"
)

// DraftEvent is the audit record published for every observable step of a
// draft. Produced only by the scheduler; consumed by the transcript, the
// live view, and the database writers.
type DraftEvent struct {
	EventID uuid.UUID `json:"event_id"` // Primary key
	DraftID uuid.UUID `json:"draft_id"` // Owning draft session
	Seq     int64     `json:"seq"`      // Monotonic within a draft
	TS      int64     `json:"ts"`       // Publish time (µs since epoch)
	Kind    EventKind `json:"kind"`     // Event classification
	Speaker string    `json:"speaker"`  // Display name ("AUCTIONEER" or a team)
	Team    string    `json:"team"`     // Acting team, empty for auctioneer color
	Item    string    `json:"item"`     // Item in play, if any
	Amount  int       `json:"amount"`   // Bid/sale amount, 0 if not applicable
	Detail  string    `json:"detail"`   // Free text (agent reply, reject reason, position tag on sales)
}

// -----------------------------------------------------------------------------
// Decision Boundary Types
// -----------------------------------------------------------------------------

// Opponent is the public view of a rival team included in prompts. Budget,
// open slots, and roster are public at the auction table; personas and plan
// documents are not.
type Opponent struct {
	Name      string
	Model     string
	Budget    int
	SlotsLeft int
	Roster    []RosterEntry
}

// Snapshot is the read-only context handed to an agent for one decision.
// It is assembled by the scheduler from isolated copies; mutating it has no
// effect on draft state.
type Snapshot struct {
	Phase     Phase
	League    string // Display name of the league, for prompt color
	Team      Team   // The asking team
	MinBid    int
	Increment int
	MaxSlots  int

	// Current lot, meaningful in PhaseBid (and partially in PhaseNominate).
	Item       string
	Position   string
	HighBid    int
	HighBidder string
	MaxAllowed int        // The asking team's current bid ceiling
	History    []BidEvent // Bid history for the current lot

	Available []string   // Sample of still-available item names
	Taken     []Sale     // Recent sales, newest last
	Opponents []Opponent // All rival teams
	PlanDoc   string     // The asking team's own plan document, if any
	Note      string     // Phase-specific instruction (retries, update context)
}

// -----------------------------------------------------------------------------
// Result Types
// -----------------------------------------------------------------------------

// TeamResult is a team's final standing.
type TeamResult struct {
	Name   string
	Budget int // Unspent budget
	Spent  int
	Roster []RosterEntry
}

// ItemResult is an item's final state.
type ItemResult struct {
	Name      string
	Position  string
	DraftedBy string // Empty when the item went undrafted
	Price     int
}

// Result is the externally visible output of a completed draft.
type Result struct {
	DraftID    uuid.UUID
	League     string
	StartedTS  int64 // µs since epoch
	FinishedTS int64 // µs since epoch
	Teams      []TeamResult
	Items      []ItemResult
}

// InitialTotal returns the sum of all starting budgets derivable from the
// result (unspent + spent per team).
func (r *Result) InitialTotal() int {
	total := 0
	for _, t := range r.Teams {
		total += t.Budget + t.Spent
	}
	return total
}
