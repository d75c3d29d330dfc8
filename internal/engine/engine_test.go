package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/rmesquita/bjjelo/internal/model"
	"github.com/rmesquita/bjjelo/internal/names"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

// seed installs a fighter with a given rating and prior match count,
// bypassing the feed so tests can start mid-career.
func seed(e *Engine, name string, rating float64, matches int) {
	e.states[names.Key(name)] = &model.FighterState{
		DisplayName: name,
		Rating:      rating,
		PeakRating:  rating,
		MatchCount:  matches,
	}
}

func match(fighter, opponent string, year, id int, result model.Result) model.MatchRecord {
	return model.MatchRecord{
		FighterName:  fighter,
		OpponentName: opponent,
		Year:         year,
		SequenceID:   id,
		Result:       result,
	}
}

// Two fresh fighters at the initial rating, a win by decision in a plain
// event: the winner's delta is 32 * 0.5 * 0.8 = 12.8, and the method bonus
// never scales the losing side, so the loser drops the unscaled 16.
func TestApply_DecisionBetweenFreshFighters(t *testing.T) {
	e := New(DefaultConfig())
	m := match("Alice", "Bob", 2021, 1, model.ResultWin)
	m.Method = "Decision"
	m.Competition = "Local Open"

	if err := e.Apply([]model.MatchRecord{m}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	alice := e.states[names.Key("Alice")]
	bob := e.states[names.Key("Bob")]
	if !almostEqual(alice.Rating, 1512.8) {
		t.Errorf("winner rating = %v, want 1512.8", alice.Rating)
	}
	if !almostEqual(bob.Rating, 1484) {
		t.Errorf("loser rating = %v, want 1484", bob.Rating)
	}
}

// An underdog submits a higher-rated fighter in a flagship-event final.
// The winner's delta carries finish, competition, and major-stage weights;
// the loser's delta carries only the stage weight.
func TestApply_FlagshipFinalWeighting(t *testing.T) {
	cfg := DefaultConfig()
	e := New(cfg)
	seed(e, "Underdog", 1400, 12)
	seed(e, "Champion", 1600, 12)

	m := match("Underdog", "Champion", 2022, 7, model.ResultWin)
	m.Method = "Choke"
	m.Competition = "World Championship"
	m.Stage = "F"

	if err := e.Apply([]model.MatchRecord{m}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	expectedWin := 1 / (1 + math.Pow(10, (1600-1400)/400.0))
	wantWinner := 1400 + 16*(1-expectedWin)*cfg.FinishMultiplier*2.5*2.5
	wantLoser := 1600 + 16*(0-(1-expectedWin))*2.5

	if got := e.states[names.Key("Underdog")].Rating; !almostEqual(got, wantWinner) {
		t.Errorf("winner rating = %v, want %v", got, wantWinner)
	}
	if got := e.states[names.Key("Champion")].Rating; !almostEqual(got, wantLoser) {
		t.Errorf("loser rating = %v, want %v", got, wantLoser)
	}
}

// With equal K-factors and no winner-only bonuses in play, a draw moves
// both ratings toward each other by the same amount.
func TestApply_DrawIsSymmetric(t *testing.T) {
	e := New(DefaultConfig())
	seed(e, "High", 1600, 12)
	seed(e, "Low", 1400, 12)

	m := match("High", "Low", 2021, 3, model.ResultDraw)
	m.Method = "Draw"

	if err := e.Apply([]model.MatchRecord{m}); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	high := e.states[names.Key("High")].Rating
	low := e.states[names.Key("Low")].Rating
	if deltaHigh, deltaLow := high-1600, low-1400; !almostEqual(deltaHigh, -deltaLow) {
		t.Errorf("asymmetric draw: deltas %v and %v", deltaHigh, deltaLow)
	}
	if high >= 1600 || low <= 1400 {
		t.Errorf("draw should pull ratings together, got %v and %v", high, low)
	}
}

func TestApply_EqualDrawIsNoOp(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Apply([]model.MatchRecord{match("A", "B", 2020, 1, model.ResultDraw)}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		if got := e.states[key].Rating; !almostEqual(got, 1500) {
			t.Errorf("rating of %q = %v, want 1500", key, got)
		}
	}
}

// Replaying the same feed on fresh state must reproduce every rating in
// every history entry exactly.
func TestApply_Deterministic(t *testing.T) {
	feed := []model.MatchRecord{
		match("A", "B", 2019, 1, model.ResultWin),
		match("C", "A", 2019, 2, model.ResultLoss),
		match("B", "C", 2020, 1, model.ResultDraw),
		match("A", "C", 2020, 2, model.ResultWin),
	}
	feed[0].Method = "Pts"
	feed[3].Competition = "European Open"
	feed[3].Stage = "SF"

	run := func() map[string]*model.FighterState {
		e := New(DefaultConfig())
		if err := e.Apply(feed); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		return e.states
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("state counts differ: %d vs %d", len(first), len(second))
	}
	for key, s1 := range first {
		s2 := second[key]
		if s1.Rating != s2.Rating || s1.PeakRating != s2.PeakRating {
			t.Errorf("%q: runs diverge (%v/%v vs %v/%v)", key, s1.Rating, s1.PeakRating, s2.Rating, s2.PeakRating)
		}
		for i := range s1.History {
			if s1.History[i] != s2.History[i] {
				t.Errorf("%q history[%d]: %+v vs %+v", key, i, s1.History[i], s2.History[i])
			}
		}
	}
}

func TestApply_PeakIsHistoryMaximum(t *testing.T) {
	e := New(DefaultConfig())
	feed := []model.MatchRecord{
		match("A", "B", 2019, 1, model.ResultWin),
		match("A", "C", 2020, 1, model.ResultWin),
		match("A", "D", 2021, 1, model.ResultLoss),
		match("A", "E", 2021, 2, model.ResultLoss),
	}
	if err := e.Apply(feed); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	a := e.states["a"]
	best := a.History[0].Rating
	bestYear := a.History[0].Year
	for _, h := range a.History[1:] {
		if h.Rating > best {
			best, bestYear = h.Rating, h.Year
		}
	}
	if !almostEqual(a.PeakRating, best) {
		t.Errorf("peak = %v, want history max %v", a.PeakRating, best)
	}
	if a.PeakYear != bestYear {
		t.Errorf("peak year = %d, want %d", a.PeakYear, bestYear)
	}
}

// A fighter who only ever loses never rises above the initial rating; the
// peak stays at the initial value with no peak year.
func TestApply_NeverAboveInitialKeepsZeroPeakYear(t *testing.T) {
	e := New(DefaultConfig())
	feed := []model.MatchRecord{
		match("Loser", "A", 2019, 1, model.ResultLoss),
		match("Loser", "B", 2019, 2, model.ResultLoss),
	}
	if err := e.Apply(feed); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	s := e.states["loser"]
	if !almostEqual(s.PeakRating, 1500) || s.PeakYear != 0 {
		t.Errorf("peak = %v year %d, want 1500 year 0", s.PeakRating, s.PeakYear)
	}
}

func TestApply_HistoryFollowsFeedOrder(t *testing.T) {
	e := New(DefaultConfig())
	feed := []model.MatchRecord{
		match("A", "B", 2019, 3, model.ResultWin),
		match("A", "C", 2019, 8, model.ResultWin),
		match("A", "D", 2020, 1, model.ResultWin),
	}
	if err := e.Apply(feed); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	hist := e.states["a"].History
	if len(hist) != 3 {
		t.Fatalf("history length = %d, want 3", len(hist))
	}
	for i := 1; i < len(hist); i++ {
		prev, cur := hist[i-1], hist[i]
		if cur.Year < prev.Year || (cur.Year == prev.Year && cur.SequenceID <= prev.SequenceID) {
			t.Errorf("history out of order at %d: %+v after %+v", i, cur, prev)
		}
	}
}

// An unknown result consumes the record but touches no state: the fighters
// are not even created.
func TestApply_UnknownResultSkipped(t *testing.T) {
	e := New(DefaultConfig())
	feed := []model.MatchRecord{
		match("A", "B", 2020, 1, model.ResultUnknown),
		match("A", "C", 2020, 2, model.ResultWin),
	}
	if err := e.Apply(feed); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	s := e.Summary()
	if s.Processed != 2 || s.SkippedUnknownResult != 1 {
		t.Errorf("summary = %+v, want 2 processed, 1 skipped", s)
	}
	if _, ok := e.states["b"]; ok {
		t.Error("unknown-result opponent should not get state")
	}
	if len(e.states["a"].History) != 1 {
		t.Errorf("history length = %d, want 1 (skipped match recorded nothing)", len(e.states["a"].History))
	}
}

// Fighter and opponent collapsing to one identity is corrupt input by
// default, reported with the record's position.
func TestApply_SelfPlayIsError(t *testing.T) {
	e := New(DefaultConfig())
	m := match("Mica Galvão", "mica galvao", 2021, 4, model.ResultWin)

	err := e.Apply([]model.MatchRecord{m})
	var selfPlay *SelfPlayError
	if !errors.As(err, &selfPlay) {
		t.Fatalf("expected SelfPlayError, got %v", err)
	}
	if selfPlay.Year != 2021 || selfPlay.SequenceID != 4 {
		t.Errorf("error position = (%d, %d), want (2021, 4)", selfPlay.Year, selfPlay.SequenceID)
	}
}

func TestApply_SelfPlaySkippedWhenConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SkipSelfPlay = true
	e := New(cfg)

	feed := []model.MatchRecord{
		match("A", "a", 2020, 1, model.ResultWin),
		match("A", "B", 2020, 2, model.ResultWin),
	}
	if err := e.Apply(feed); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	s := e.Summary()
	if s.Processed != 2 || s.SkippedSelfPlay != 1 {
		t.Errorf("summary = %+v, want 2 processed, 1 self-play skip", s)
	}
	if len(e.states["a"].History) != 1 {
		t.Errorf("history length = %d, want 1", len(e.states["a"].History))
	}
}

// The provisional cut-off uses the count before the match: the tenth match
// still swings at K_NEW, the eleventh at K_ESTABLISHED.
func TestKFactor_ProvisionalBoundary(t *testing.T) {
	e := New(DefaultConfig())
	cases := []struct {
		prior int
		want  float64
	}{
		{0, 32},
		{9, 32},
		{10, 16},
		{11, 16},
	}
	for _, c := range cases {
		if got := e.kFactor(c.prior); got != c.want {
			t.Errorf("kFactor(%d) = %v, want %v", c.prior, got, c.want)
		}
	}
}

// Different spellings of one fighter accumulate into a single state, and
// the display name comes from the first spelling seen.
func TestApply_MergesSpellingVariants(t *testing.T) {
	e := New(DefaultConfig())
	feed := []model.MatchRecord{
		match("Mica Galvão", "B", 2020, 1, model.ResultWin),
		match("mica galvao", "C", 2020, 2, model.ResultWin),
	}
	if err := e.Apply(feed); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	s, ok := e.states["mica galvao"]
	if !ok {
		t.Fatal("merged state missing")
	}
	if s.MatchCount != 2 {
		t.Errorf("match count = %d, want 2", s.MatchCount)
	}
	if s.DisplayName != "Mica Galvão" {
		t.Errorf("display name = %q, want first-seen spelling", s.DisplayName)
	}
}

// Both sides of a match get a history entry keyed by the same (year, id).
func TestApply_BothSidesRecorded(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Apply([]model.MatchRecord{match("A", "B", 2020, 5, model.ResultWin)}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	for _, key := range []string{"a", "b"} {
		hist := e.states[key].History
		if len(hist) != 1 || hist[0].Year != 2020 || hist[0].SequenceID != 5 {
			t.Errorf("%q history = %+v", key, hist)
		}
	}
}
