package draft

import (
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/ledger"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// LotState is the lifecycle position of an auction lot.
type LotState int

const (
	// LotEmpty means no item is on the block.
	LotEmpty LotState = iota
	// LotOpen means an item is up for bids.
	LotOpen
)

// Lot is the bid state machine for a single item on the block. A lot leaves
// Open in one of two ways, both through Sell: sold to the standing high
// bidder, or voided when no bid ever registered. Either way the lot resets
// to Empty and is reused for the next item.
//
// Lot never mutates team budgets or rosters; it only reads them through the
// ledger to validate bids. Settlement is the scheduler's job.
type Lot struct {
	minBid    int
	increment int
	led       *ledger.Ledger

	state      LotState
	item       model.Item
	highBid    int
	highBidder string
	history    []model.BidEvent
}

// NewLot returns an empty lot validating against the given ledger.
func NewLot(minBid, increment int, led *ledger.Ledger) *Lot {
	return &Lot{minBid: minBid, increment: increment, led: led}
}

// Open puts an item on the block, clearing any prior bid state.
func (l *Lot) Open(item model.Item) {
	l.state = LotOpen
	l.item = item
	l.highBid = 0
	l.highBidder = ""
	l.history = nil
}

// State returns the current lifecycle state.
func (l *Lot) State() LotState { return l.state }

// Item returns the item on the block. Zero value when the lot is empty.
func (l *Lot) Item() model.Item { return l.item }

// HighBid returns the standing high bid, 0 if none.
func (l *Lot) HighBid() int { return l.highBid }

// HighBidder returns the team holding the high bid, "" if none.
func (l *Lot) HighBidder() string { return l.highBidder }

// History returns a copy of every bid attempt on the current lot, accepted
// and rejected, in arrival order.
func (l *Lot) History() []model.BidEvent {
	out := make([]model.BidEvent, len(l.history))
	copy(out, l.history)
	return out
}

// ValidIncrement reports whether amount is a legal bid value purely on
// increment grounds: at least the minimum bid, a multiple of the increment,
// and at least one increment above the standing high bid when one exists.
func (l *Lot) ValidIncrement(amount int) bool {
	if amount < l.minBid {
		return false
	}
	if amount%l.increment != 0 {
		return false
	}
	if l.highBid > 0 && amount < l.highBid+l.increment {
		return false
	}
	return true
}

// CanBid reports whether team may bid amount on the open lot. Checks run in
// a fixed order and the first failure names the rejection reason: lot open,
// increment validity, budget, then the roster reserve.
func (l *Lot) CanBid(team string, amount int) (bool, model.Reason) {
	if l.state != LotOpen {
		return false, model.ReasonNoLot
	}
	if !l.ValidIncrement(amount) {
		return false, model.ReasonIncrement
	}
	budget := 0
	if tm, ok := l.led.Team(team); ok {
		budget = tm.Budget
	}
	if amount > budget {
		return false, model.ReasonOverBudget
	}
	if amount > l.led.MaxAllowedBid(team) {
		return false, model.ReasonReserve
	}
	return true, model.ReasonNone
}

// ApplyBid validates and records a bid. A team already holding the high bid
// is rejected outright, before any other check. Every attempt, accepted or
// not, lands in the lot history.
func (l *Lot) ApplyBid(team string, amount int) (bool, model.Reason) {
	if team == l.highBidder && l.highBid > 0 {
		l.record(team, amount, false, model.ReasonSelfRaise)
		return false, model.ReasonSelfRaise
	}
	ok, reason := l.CanBid(team, amount)
	if !ok {
		l.record(team, amount, false, reason)
		return false, reason
	}
	l.highBid = amount
	l.highBidder = team
	l.record(team, amount, true, model.ReasonNone)
	return true, model.ReasonNone
}

// Sell closes the lot. With a standing high bid it returns the sale and
// true; with no bidder it returns false. The lot resets to Empty either
// way. Sell records nothing against the ledger or catalogue.
func (l *Lot) Sell() (model.Sale, bool) {
	sale := model.Sale{}
	sold := false
	if l.state == LotOpen && l.highBidder != "" {
		sale = model.Sale{
			Item:     l.item.Name,
			Position: l.item.Position,
			Team:     l.highBidder,
			Price:    l.highBid,
		}
		sold = true
	}
	l.state = LotEmpty
	l.item = model.Item{}
	l.highBid = 0
	l.highBidder = ""
	l.history = nil
	return sale, sold
}

func (l *Lot) record(team string, amount int, accepted bool, reason model.Reason) {
	l.history = append(l.history, model.BidEvent{
		Team:     team,
		Amount:   amount,
		Accepted: accepted,
		Reason:   reason,
	})
}
