package extract

import (
	"strconv"
	"strings"
)

// Exact is a strict extractor for scripted agents and harnesses. A bid is
// recognized only when a line of the reply is exactly "BID: N" (optional
// dollar sign), and a nominee only when a line equals an available name
// verbatim, case-insensitively. Anything conversational fails extraction,
// which makes scripted drafts fully predictable.
type Exact struct{}

// NewExact returns the strict extractor.
func NewExact() *Exact { return &Exact{} }

// Bid implements Extractor.
func (e *Exact) Bid(text string) (int, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		rest, ok := cutPrefixFold(line, "BID:")
		if !ok {
			continue
		}
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "$"))
		v, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}

// Nominee implements Extractor.
func (e *Exact) Nominee(text string, available []string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, name := range available {
			if strings.EqualFold(line, name) {
				return name, true
			}
		}
	}
	return "", false
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
