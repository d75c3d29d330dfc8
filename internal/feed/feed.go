// Package feed loads the raw match table and produces the deterministically
// ordered sequence the rating engine consumes. Ratings are path-dependent:
// every match's expected score depends on the ratings left behind by all
// earlier matches, so the (Year, ID) ordering here is load-bearing.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rmesquita/bjjelo/internal/model"
)

// MalformedRecordError identifies a row whose Year or ID column cannot be
// parsed. Such rows abort the load: silently dropping them would corrupt
// the ordering of everything after them.
type MalformedRecordError struct {
	Row   int // 1-based line number in the source table, header included
	Field string
	Value string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("row %d: malformed %s %q", e.Row, e.Field, e.Value)
}

// Column names recognized in the header row. The result column appears as
// either "W/L" or "Result" depending on the source page vintage.
const (
	colFighter     = "Fighter_Name"
	colOpponent    = "Opponent"
	colYear        = "Year"
	colID          = "ID"
	colResult      = "Result"
	colResultAlt   = "W/L"
	colMethod      = "Method"
	colCompetition = "Competition"
	colStage       = "Stage"
)

// Read decodes match records from a CSV stream. The first row must be a
// header containing at least Fighter_Name, Opponent, Year, and ID.
func Read(r io.Reader) ([]model.MatchRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // source tables vary in width

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty match table")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{colFighter, colOpponent, colYear, colID} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("match table missing required column %q", required)
		}
	}
	resultCol, ok := idx[colResultAlt]
	if !ok {
		if resultCol, ok = idx[colResult]; !ok {
			return nil, fmt.Errorf("match table missing result column (%q or %q)", colResultAlt, colResult)
		}
	}

	cell := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}
	optional := func(row []string, name string) string {
		col, ok := idx[name]
		if !ok {
			return ""
		}
		return cell(row, col)
	}

	var records []model.MatchRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}

		yearStr := cell(row, idx[colYear])
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, &MalformedRecordError{Row: line, Field: colYear, Value: yearStr}
		}
		idStr := cell(row, idx[colID])
		seq, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, &MalformedRecordError{Row: line, Field: colID, Value: idStr}
		}

		records = append(records, model.MatchRecord{
			FighterName:  cell(row, idx[colFighter]),
			OpponentName: cell(row, idx[colOpponent]),
			Year:         year,
			SequenceID:   seq,
			Result:       model.ParseResult(cell(row, resultCol)),
			Method:       optional(row, colMethod),
			Competition:  optional(row, colCompetition),
			Stage:        optional(row, colStage),
		})
	}
	return records, nil
}

// ReadFile reads match records from a CSV file on disk.
func ReadFile(path string) ([]model.MatchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open match table: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Order returns a copy of records sorted ascending by (Year, SequenceID).
// The sort is stable so equal keys keep their input order across runs.
func Order(records []model.MatchRecord) []model.MatchRecord {
	out := make([]model.MatchRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].SequenceID < out[j].SequenceID
	})
	return out
}

// Load reads and orders a match table in one step.
func Load(path string) ([]model.MatchRecord, error) {
	records, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Order(records), nil
}
