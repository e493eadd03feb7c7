package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/catalogue"
	"github.com/gamedaysuits/GDS-AI-Draft-Benchmark/internal/model"
)

// WriteResultsCSV writes the draft results file: every row and column of
// the source players CSV preserved, with DraftedBy and Price columns
// appended. Undrafted players get blank cells. A catalogue built in memory
// has no source file, so a Name/Pos header is synthesized instead.
func WriteResultsCSV(path string, cat *catalogue.Catalogue, res *model.Result) error {
	drafted := make(map[string]model.ItemResult, len(res.Items))
	for _, it := range res.Items {
		if it.DraftedBy != "" {
			drafted[it.Name] = it
		}
	}

	header, rows, err := sourceRows(cat)
	if err != nil {
		return err
	}
	nameCol := columnIndex(header, "Name")
	if nameCol < 0 {
		return fmt.Errorf("results source has no Name column")
	}

	// Re-running over an earlier results file reuses its columns in place.
	teamCol := columnIndex(header, "DraftedBy")
	if teamCol < 0 {
		teamCol = len(header)
		header = append(header, "DraftedBy")
	}
	priceCol := columnIndex(header, "Price")
	if priceCol < 0 {
		priceCol = len(header)
		header = append(header, "Price")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	w := csv.NewWriter(f)

	write := func(row []string) error {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write results row: %w", err)
		}
		return nil
	}
	if err := write(header); err != nil {
		return err
	}
	for _, row := range rows {
		out := make([]string, len(header))
		copy(out, row)
		name := strings.TrimSpace(cell(out, nameCol))
		if it, ok := drafted[name]; ok {
			out[teamCol] = it.DraftedBy
			out[priceCol] = strconv.Itoa(it.Price)
		} else {
			out[teamCol] = ""
			out[priceCol] = ""
		}
		if err := write(out); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush results file: %w", err)
	}
	return f.Close()
}

// ReadResultsCSV rebuilds rosters from a results file, keyed by team name.
// Rows without a name or a drafting team are skipped; a missing position
// defaults to W and an unparseable price to 0, matching what the draft
// itself would have recorded.
func ReadResultsCSV(path string) (map[string][]model.RosterEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse results file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("results file %s: empty", path)
	}

	header := records[0]
	nameCol := columnIndex(header, "Name")
	teamCol := columnIndex(header, "DraftedBy")
	if nameCol < 0 || teamCol < 0 {
		return nil, fmt.Errorf("results file %s: missing Name or DraftedBy column", path)
	}
	posCol := columnIndex(header, "Pos")
	priceCol := columnIndex(header, "Price")

	rosters := make(map[string][]model.RosterEntry)
	for _, row := range records[1:] {
		name := strings.TrimSpace(cell(row, nameCol))
		team := strings.TrimSpace(cell(row, teamCol))
		if name == "" || team == "" {
			continue
		}
		pos := strings.TrimSpace(cell(row, posCol))
		if pos == "" {
			pos = "W"
		}
		price, _ := strconv.Atoi(strings.TrimSpace(cell(row, priceCol)))
		rosters[team] = append(rosters[team], model.RosterEntry{
			Item:     name,
			Position: pos,
			Price:    price,
		})
	}
	return rosters, nil
}

// sourceRows returns the header and data rows the results file starts
// from: the catalogue's source CSV when it has one, otherwise rows
// synthesized from the catalogue itself.
func sourceRows(cat *catalogue.Catalogue) ([]string, [][]string, error) {
	src := cat.Source()
	if src == "" {
		header := []string{"Name", "Pos"}
		items := cat.Items()
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{it.Name, it.Position})
		}
		return header, rows, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, nil, fmt.Errorf("read players file: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	r := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse players file: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("players file %s: empty", src)
	}
	return records[0], records[1:], nil
}

// columnIndex finds a header column by exact name or by prefix followed by
// a space, so "PTS (2024-25)" matches "PTS".
func columnIndex(header []string, name string) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == name || strings.HasPrefix(h, name+" ") {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
