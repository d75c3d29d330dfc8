// Package aggregate derives read-only projections from the rating engine's
// final state map. Nothing here mutates fighter state, so the projections
// are safe to compute independently over the same completed run.
package aggregate

import (
	"sort"

	"github.com/rmesquita/bjjelo/internal/model"
)

// sortedKeys gives every projection a stable entity order regardless of map
// iteration.
func sortedKeys(states map[string]*model.FighterState) []string {
	keys := make([]string, 0, len(states))
	for k := range states {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Leaderboard returns one row per fighter with at least minMatches matches,
// sorted by current rating descending (name ascending on ties), plus the
// total/kept/removed accounting for the filter.
func Leaderboard(states map[string]*model.FighterState, minMatches int) ([]model.LeaderboardRow, model.FilterCounts) {
	counts := model.FilterCounts{Total: len(states)}

	rows := make([]model.LeaderboardRow, 0, len(states))
	for _, key := range sortedKeys(states) {
		s := states[key]
		if s.MatchCount < minMatches {
			counts.Removed++
			continue
		}
		counts.Kept++
		rows = append(rows, model.LeaderboardRow{
			Name:       s.DisplayName,
			Rating:     s.Rating,
			PeakRating: s.PeakRating,
			PeakYear:   s.PeakYear,
			Matches:    s.MatchCount,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, counts
}

// PeakTable returns every fighter's peak rating and the year it was set,
// sorted by peak descending.
func PeakTable(states map[string]*model.FighterState) []model.PeakRow {
	rows := make([]model.PeakRow, 0, len(states))
	for _, key := range sortedKeys(states) {
		s := states[key]
		rows = append(rows, model.PeakRow{
			Name:       s.DisplayName,
			PeakRating: s.PeakRating,
			PeakYear:   s.PeakYear,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PeakRating != rows[j].PeakRating {
			return rows[i].PeakRating > rows[j].PeakRating
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// History flattens every fighter's trajectory into rows, chronological per
// fighter, fighters in canonical-key order.
func History(states map[string]*model.FighterState) []model.HistoryRow {
	var rows []model.HistoryRow
	for _, key := range sortedKeys(states) {
		s := states[key]
		for _, h := range s.History {
			rows = append(rows, model.HistoryRow{
				Name:       s.DisplayName,
				Year:       h.Year,
				SequenceID: h.SequenceID,
				Rating:     h.Rating,
			})
		}
	}
	return rows
}

// YearEndTopN ranks, for each year with any activity, the top n fighters by
// their last rating within that year, meaning the history entry with the
// highest sequence id in that year, not the fighter's overall final rating.
func YearEndTopN(states map[string]*model.FighterState, n int) []model.YearEndRow {
	type standing struct {
		name   string
		rating float64
	}
	byYear := make(map[int][]standing)

	for _, key := range sortedKeys(states) {
		s := states[key]
		// History is ordered, so the last entry seen for a year is the
		// year-end value.
		lastInYear := make(map[int]float64)
		for _, h := range s.History {
			lastInYear[h.Year] = h.Rating
		}
		for year, rating := range lastInYear {
			byYear[year] = append(byYear[year], standing{s.DisplayName, rating})
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	var rows []model.YearEndRow
	for _, year := range years {
		group := byYear[year]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].rating != group[j].rating {
				return group[i].rating > group[j].rating
			}
			return group[i].name < group[j].name
		})
		if len(group) > n {
			group = group[:n]
		}
		for rank, s := range group {
			rows = append(rows, model.YearEndRow{
				Year:   year,
				Rank:   rank + 1,
				Name:   s.name,
				Rating: s.rating,
			})
		}
	}
	return rows
}
