// Package report renders rating projections as terminal tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rmesquita/bjjelo/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// peakYear renders the year a peak was set, or a dash for fighters whose
// rating never rose above the initial value.
func peakYear(year int) string {
	if year == 0 {
		return "—"
	}
	return strconv.Itoa(year)
}

// PrintRunSummary prints the per-run accounting line block.
func PrintRunSummary(w io.Writer, s model.RunSummary, counts model.FilterCounts, minMatches int) {
	fmt.Fprintf(w, "\nProcessed %d match records (%d skipped: unknown result, %d skipped: self-play)\n",
		s.Processed, s.SkippedUnknownResult, s.SkippedSelfPlay)
	fmt.Fprintf(w, "Fighters: %d total, %d kept, %d removed by the min-matches filter (>= %d matches)\n\n",
		counts.Total, counts.Kept, counts.Removed, minMatches)
}

// PrintLeaderboard prints the final leaderboard table.
func PrintLeaderboard(w io.Writer, rows []model.LeaderboardRow) {
	table := newTable(w)
	table.Header("#", "FIGHTER", "RATING", "PEAK", "PEAK_YEAR", "MATCHES")
	for i, r := range rows {
		table.Append(
			strconv.Itoa(i+1),
			r.Name,
			fmt.Sprintf("%.2f", r.Rating),
			fmt.Sprintf("%.2f", r.PeakRating),
			peakYear(r.PeakYear),
			strconv.Itoa(r.Matches),
		)
	}
	table.Render()
}

// PrintPeakTable prints the all-time peak ratings table.
func PrintPeakTable(w io.Writer, rows []model.PeakRow) {
	table := newTable(w)
	table.Header("#", "FIGHTER", "PEAK", "YEAR")
	for i, r := range rows {
		table.Append(
			strconv.Itoa(i+1),
			r.Name,
			fmt.Sprintf("%.2f", r.PeakRating),
			peakYear(r.PeakYear),
		)
	}
	table.Render()
}

// PrintHistory prints flattened rating trajectories.
func PrintHistory(w io.Writer, rows []model.HistoryRow) {
	table := newTable(w)
	table.Header("FIGHTER", "YEAR", "ID", "RATING")
	for _, r := range rows {
		table.Append(
			r.Name,
			strconv.Itoa(r.Year),
			strconv.Itoa(r.SequenceID),
			fmt.Sprintf("%.2f", r.Rating),
		)
	}
	table.Render()
}

// PrintYearEnd prints the per-year top-N snapshot table.
func PrintYearEnd(w io.Writer, rows []model.YearEndRow) {
	table := newTable(w)
	table.Header("YEAR", "RANK", "FIGHTER", "RATING")
	for _, r := range rows {
		table.Append(
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Rank),
			r.Name,
			fmt.Sprintf("%.2f", r.Rating),
		)
	}
	table.Render()
}

// MergeGroup is a set of raw spellings that collapsed into one canonical
// identity.
type MergeGroup struct {
	Key       string
	Spellings []string
}

// PrintMergeGroups prints the canonicalization report: identities that
// merged more than one raw spelling.
func PrintMergeGroups(w io.Writer, groups []MergeGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No merged identities: every fighter name has a single spelling.")
		return
	}
	table := newTable(w)
	table.Header("CANONICAL KEY", "SPELLINGS", "RAW FORMS")
	for _, g := range groups {
		for i, sp := range g.Spellings {
			key, n := "", ""
			if i == 0 {
				key = g.Key
				n = strconv.Itoa(len(g.Spellings))
			}
			table.Append(key, n, sp)
		}
	}
	table.Render()
}
