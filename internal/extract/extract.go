package extract

// Extractor turns a free-form agent reply into engine decisions. Both
// methods are pure text operations: no catalogue access, no state.
type Extractor interface {
	// Bid returns the raw bid amount declared in text, unrounded. ok is
	// false when the text carries no recognizable bid token.
	Bid(text string) (amount int, ok bool)

	// Nominee returns the player named in text. available lists the
	// canonical names still on the board; implementations match against it
	// first but may return a name outside it (the caller resolves). ok is
	// false when no name can be extracted.
	Nominee(text string, available []string) (name string, ok bool)
}
