package catalogue

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// Catalogue holds the thread-safe item cache and its available/drafted
// partition. Only Take mutates the partition.
type Catalogue struct {
	mu sync.RWMutex

	// All known items indexed by canonical name.
	items map[string]*model.Item

	// Case-folded name -> canonical name, for case-insensitive resolution.
	byFold map[string]string

	// Items still available for nomination.
	available map[string]struct{}

	// CSV path the catalogue was loaded from, empty when built in memory.
	source string
}

// New builds a catalogue from an ordered item set. Items with empty or
// duplicate names (including names differing only by case) are rejected.
func New(items []model.Item) (*Catalogue, error) {
	c := &Catalogue{
		items:     make(map[string]*model.Item, len(items)),
		byFold:    make(map[string]string, len(items)),
		available: make(map[string]struct{}, len(items)),
	}

	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d: empty name", i)
		}
		fold := strings.ToLower(name)
		if _, exists := c.byFold[fold]; exists {
			return nil, fmt.Errorf("duplicate item name %q", name)
		}

		itemCopy := item
		itemCopy.Name = name
		itemCopy.DraftedBy = ""
		itemCopy.Price = 0

		c.items[name] = &itemCopy
		c.byFold[fold] = name
		c.available[name] = struct{}{}
	}

	return c, nil
}

// LoadCSV builds a catalogue from a players CSV file. Leading blank lines
// are stripped before the header row; a Name column is required, Pos and
// PTS (or G and A) columns are optional.
func LoadCSV(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read players file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("players file %s: no header row", path)
	}

	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse players file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("players file %s: empty", path)
	}

	header := records[0]
	nameCol := findColumn(header, "Name")
	if nameCol < 0 {
		return nil, fmt.Errorf("players file %s: no Name column", path)
	}
	posCol := findColumn(header, "Pos")
	ptsCol := findColumn(header, "PTS")
	goalsCol := findColumn(header, "G")
	assistsCol := findColumn(header, "A")

	var items []model.Item
	for _, row := range records[1:] {
		name := strings.TrimSpace(field(row, nameCol))
		if name == "" {
			continue
		}
		item := model.Item{
			Name:     name,
			Position: strings.TrimSpace(field(row, posCol)),
		}
		if pts, ok := parseFloat(field(row, ptsCol)); ok {
			item.Points = pts
		} else {
			// Fall back to goals + assists when no points column exists.
			g, gok := parseFloat(field(row, goalsCol))
			a, aok := parseFloat(field(row, assistsCol))
			if gok && aok {
				item.Points = g + a
			}
		}
		items = append(items, item)
	}

	c, err := New(items)
	if err != nil {
		return nil, fmt.Errorf("players file %s: %w", path, err)
	}
	c.source = path
	return c, nil
}

// findColumn returns the index of the first header matching name exactly or
// by prefix followed by a space (e.g., "PTS (2024-25)" matches "PTS").
func findColumn(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == name || strings.HasPrefix(h, name+" ") {
			return i
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Resolve looks a proposed name up case-insensitively against the available
// set. Drafted items are not candidates.
func (c *Catalogue) Resolve(name string) (model.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	canonical, ok := c.byFold[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Item{}, false
	}
	if _, avail := c.available[canonical]; !avail {
		return model.Item{}, false
	}
	return *c.items[canonical], true
}

// Lookup returns any known item by name, drafted or not.
func (c *Catalogue) Lookup(name string) (model.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	canonical, ok := c.byFold[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Item{}, false
	}
	return *c.items[canonical], true
}

// Take moves an item from available to drafted and records the winning
// (team, price) pair. Returns false without mutating anything if the item
// is unknown or already drafted; safe to call twice.
func (c *Catalogue) Take(name, team string, price int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	canonical, ok := c.byFold[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return false
	}
	if _, avail := c.available[canonical]; !avail {
		return false
	}

	delete(c.available, canonical)
	item := c.items[canonical]
	item.DraftedBy = team
	item.Price = price
	return true
}

// Available returns the sorted names of all still-available items.
func (c *Catalogue) Available() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.available))
	for name := range c.available {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FirstAvailable returns the lexicographically first available item.
// Used as the deterministic substitute for already-drafted nominations.
func (c *Catalogue) FirstAvailable() (model.Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	first := ""
	for name := range c.available {
		if first == "" || name < first {
			first = name
		}
	}
	if first == "" {
		return model.Item{}, false
	}
	return *c.items[first], true
}

// AvailableCount returns the number of items still available.
func (c *Catalogue) AvailableCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.available)
}

// Size returns the total number of items in the catalogue.
func (c *Catalogue) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Items returns isolated copies of every item, sorted by name.
func (c *Catalogue) Items() []model.Item {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]model.Item, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// Source returns the CSV path the catalogue was loaded from, if any.
func (c *Catalogue) Source() string {
	return c.source
}
