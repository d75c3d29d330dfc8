package model

import "strings"

// Result is the outcome of a match from the fighter-column perspective.
type Result int

const (
	ResultUnknown Result = 0
	ResultWin     Result = 1
	ResultLoss    Result = 2
	ResultDraw    Result = 3
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "W"
	case ResultLoss:
		return "L"
	case ResultDraw:
		return "D"
	default:
		return "?"
	}
}

// ParseResult maps a raw W/L column value to a Result. Anything other than
// W, L, or D (case-insensitive) is ResultUnknown; such records are consumed
// but have no rating effect.
func ParseResult(s string) Result {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "W", "WIN":
		return ResultWin
	case "L", "LOSS":
		return ResultLoss
	case "D", "DRAW":
		return ResultDraw
	default:
		return ResultUnknown
	}
}

// MatchRecord is one row of the raw match table. Immutable after load.
// SequenceID is the tournament-assigned ordinal; it is unique only in
// combination with Year, and the pair is the total processing order.
type MatchRecord struct {
	FighterName  string
	OpponentName string
	Year         int
	SequenceID   int
	Result       Result
	Method       string
	Competition  string
	Stage        string
}

// HistoryEntry is one point of a fighter's rating trajectory.
type HistoryEntry struct {
	Year       int
	SequenceID int
	Rating     float64
}

// FighterState is the mutable per-fighter rating state, keyed by canonical
// name. History is append-only in processing order; PeakRating is the
// maximum rating ever observed (the current rating may fall below it).
type FighterState struct {
	DisplayName string
	Rating      float64
	MatchCount  int
	PeakRating  float64
	PeakYear    int // 0 until the peak is first raised above the initial rating
	History     []HistoryEntry
}

// ---- Projections over the final state map ----

// LeaderboardRow is one fighter on the final leaderboard.
type LeaderboardRow struct {
	Name       string
	Rating     float64
	PeakRating float64
	PeakYear   int
	Matches    int
}

// PeakRow is one fighter in the all-time peak table.
type PeakRow struct {
	Name       string
	PeakRating float64
	PeakYear   int
}

// HistoryRow is one flattened history entry.
type HistoryRow struct {
	Name       string
	Year       int
	SequenceID int
	Rating     float64
}

// YearEndRow is one ranked fighter in a year-end snapshot, ranked by their
// last rating within that year.
type YearEndRow struct {
	Year   int
	Rank   int
	Name   string
	Rating float64
}

// FilterCounts reports the effect of the minimum-matches leaderboard filter.
type FilterCounts struct {
	Total   int
	Kept    int
	Removed int
}

// RunSummary is the user-visible accounting of one rating run.
type RunSummary struct {
	Processed            int // records consumed, including skipped ones
	SkippedUnknownResult int
	SkippedSelfPlay      int
}
