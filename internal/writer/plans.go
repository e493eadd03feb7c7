package writer

import (
	"bufio"
	"fmt"
	"os"
)

// WritePlanDocs writes each team's final plan document to a review file,
// one "## Team" section per team in draft order. Plans are private during
// the draft, so this is the only place they surface.
func WritePlanDocs(path string, order []string, plans map[string]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plan documents file: %w", err)
	}
	w := bufio.NewWriter(f)

	for _, team := range order {
		fmt.Fprintf(w, "## %s\n", team)
		if doc := plans[team]; doc != "" {
			fmt.Fprintf(w, "%s\n\n", doc)
		} else {
			fmt.Fprint(w, "(no plan document returned)\n\n")
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush plan documents file: %w", err)
	}
	return f.Close()
}
