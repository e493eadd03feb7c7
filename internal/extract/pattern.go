package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// bidRE matches an explicit bid token: "BID: 40", "bid:$120", "Bid : $60".
	bidRE = regexp.MustCompile(`(?i)\bBID\s*:\s*\$?(\d{1,5})\b`)

	// namePosRE matches an ad-hoc "Firstname Lastname (POS)" mention for
	// players the reply names outside the provided list. Case-sensitive on
	// purpose: the capitalized-word shape is the signal.
	namePosRE = regexp.MustCompile(`\b([A-Z][A-Za-z.'-]+(?:\s+[A-Z][A-Za-z.'-]+){1,3})\s*\((C|LW|RW|W|D|G|F)\)`)
)

// Pattern extracts decisions from conversational replies. Bid amounts come
// from an explicit "BID: $N" token. Nominees come from scanning the reply
// for any available player name, longest name first so "Ryan Nugent-Hopkins"
// wins over a teammate named "Ryan"; when no listed name appears, a
// "Name (POS)" mention is returned as-is for the caller to resolve.
type Pattern struct{}

// NewPattern returns the production extractor.
func NewPattern() *Pattern { return &Pattern{} }

// Bid implements Extractor.
func (p *Pattern) Bid(text string) (int, bool) {
	m := bidRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// Nominee implements Extractor.
func (p *Pattern) Nominee(text string, available []string) (string, bool) {
	if name, ok := findName(text, available); ok {
		return name, true
	}
	if m := namePosRE.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// findName scans text for the longest listed name present as a whole word,
// case-insensitively.
func findName(text string, names []string) (string, bool) {
	if len(names) == 0 || text == "" {
		return "", false
	}
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	lower := strings.ToLower(text)
	for _, name := range sorted {
		if name == "" {
			continue
		}
		if containsWord(lower, strings.ToLower(name)) {
			return name, true
		}
	}
	return "", false
}

// containsWord reports whether needle occurs in haystack bounded by
// non-alphanumeric runes. Both arguments must already be lower-cased.
func containsWord(haystack, needle string) bool {
	for from := 0; ; {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		from = start + 1
		if from >= len(haystack) {
			return false
		}
	}
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
