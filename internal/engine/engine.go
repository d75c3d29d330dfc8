// Package engine implements the sequential Elo rating computation.
//
// The engine owns all fighter state for the duration of one run. It is
// strictly single-threaded: matches are applied one at a time in feed
// order, and each update depends on the cumulative effect of everything
// before it. Callers read the final state map only after Apply returns.
package engine

import (
	"fmt"
	"math"

	"github.com/rmesquita/bjjelo/internal/model"
	"github.com/rmesquita/bjjelo/internal/names"
)

// SelfPlayError reports a record whose fighter and opponent canonicalize to
// the same identity. By default this is treated as corrupt input.
type SelfPlayError struct {
	Name       string
	Year       int
	SequenceID int
}

func (e *SelfPlayError) Error() string {
	return fmt.Sprintf("fighter %q listed as their own opponent (year %d, id %d)", e.Name, e.Year, e.SequenceID)
}

// Engine accumulates per-fighter rating state over an ordered match feed.
type Engine struct {
	cfg     Config
	states  map[string]*model.FighterState
	summary model.RunSummary
}

// New returns an Engine with empty state.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:    cfg,
		states: make(map[string]*model.FighterState),
	}
}

// States returns the final canonical-key -> state map. The caller must
// treat it as read-only.
func (e *Engine) States() map[string]*model.FighterState {
	return e.states
}

// Summary returns the run accounting so far.
func (e *Engine) Summary() model.RunSummary {
	return e.summary
}

// Apply consumes matches in the given order, mutating fighter state once
// per match per participant. The input must already be sorted by
// (Year, SequenceID); see the feed package.
func (e *Engine) Apply(matches []model.MatchRecord) error {
	for i := range matches {
		if err := e.applyOne(&matches[i]); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) applyOne(m *model.MatchRecord) error {
	fighterKey := names.Key(m.FighterName)
	opponentKey := names.Key(m.OpponentName)
	if fighterKey == opponentKey {
		if !e.cfg.SkipSelfPlay {
			return &SelfPlayError{Name: m.FighterName, Year: m.Year, SequenceID: m.SequenceID}
		}
		e.summary.Processed++
		e.summary.SkippedSelfPlay++
		return nil
	}

	e.summary.Processed++

	var scoreF, scoreO float64
	switch m.Result {
	case model.ResultWin:
		scoreF, scoreO = 1, 0
	case model.ResultLoss:
		scoreF, scoreO = 0, 1
	case model.ResultDraw:
		scoreF, scoreO = 0.5, 0.5
	default:
		// Unknown result: consumed but no state change, no history entry.
		e.summary.SkippedUnknownResult++
		return nil
	}

	fighter := e.state(fighterKey, m.FighterName)
	opponent := e.state(opponentKey, m.OpponentName)

	expectedF := 1 / (1 + math.Pow(10, (opponent.Rating-fighter.Rating)/400))
	expectedO := 1 - expectedF

	// Provisional check uses the count before this match.
	kF := e.kFactor(fighter.MatchCount)
	kO := e.kFactor(opponent.MatchCount)

	// Stage weighting applies to both sides; method and competition
	// bonuses apply only to a winning fighter row, never to the losing
	// or drawing side.
	stage := e.stageMultiplier(m.Competition, m.Stage)
	methodF, compF := 1.0, 1.0
	if m.Result == model.ResultWin {
		methodF = e.methodMultiplier(m.Method)
		compF = e.competitionMultiplier(m.Competition)
	}

	fighter.Rating += kF * (scoreF - expectedF) * methodF * compF * stage
	opponent.Rating += kO * (scoreO - expectedO) * stage

	fighter.MatchCount++
	opponent.MatchCount++

	record := func(s *model.FighterState) {
		s.History = append(s.History, model.HistoryEntry{
			Year:       m.Year,
			SequenceID: m.SequenceID,
			Rating:     s.Rating,
		})
		if s.Rating > s.PeakRating {
			s.PeakRating = s.Rating
			s.PeakYear = m.Year
		}
	}
	record(fighter)
	record(opponent)
	return nil
}

// state returns the fighter state for key, creating it at the initial
// rating on first appearance. The display name is the first-seen spelling,
// which is deterministic because processing is sequential.
func (e *Engine) state(key, rawName string) *model.FighterState {
	s, ok := e.states[key]
	if !ok {
		s = &model.FighterState{
			DisplayName: names.Display(rawName),
			Rating:      e.cfg.InitialRating,
			PeakRating:  e.cfg.InitialRating,
		}
		e.states[key] = s
	}
	return s
}

func (e *Engine) kFactor(priorMatches int) float64 {
	if priorMatches < e.cfg.ProvisionalMatches {
		return e.cfg.KNew
	}
	return e.cfg.KEstablished
}
