package engine

import "strings"

// Config holds every tunable of the rating model. DefaultConfig matches the
// historical parameterization; the config package layers file/env overrides
// on top.
type Config struct {
	InitialRating      float64
	KNew               float64
	KEstablished       float64
	ProvisionalMatches int

	// MethodMultipliers maps victory-method keywords to the scaling of the
	// winner's delta. A win whose method matches no keyword counts as a
	// finish and uses FinishMultiplier; an absent method is neutral (1.0).
	MethodMultipliers map[string]float64
	FinishMultiplier  float64

	// CompetitionMultipliers maps prestige keywords to the scaling of the
	// winner's delta. A record whose competition matches any keyword here
	// is also treated as a major event for stage weighting.
	CompetitionMultipliers map[string]float64

	// StageMajor and StageOther map the bracket tier (final, semifinal,
	// quarterfinal) to a multiplier applied to both sides' deltas.
	StageMajor map[string]float64
	StageOther map[string]float64

	// SkipSelfPlay downgrades self-play rows from a hard error to a
	// counted skip.
	SkipSelfPlay bool
}

// DefaultConfig returns the standard rating model parameters.
func DefaultConfig() Config {
	return Config{
		InitialRating:      1500,
		KNew:               32,
		KEstablished:       16,
		ProvisionalMatches: 10,
		MethodMultipliers: map[string]float64{
			"adv":      0.8,
			"decision": 0.8,
			"pts":      1.0,
			"points":   1.0,
		},
		FinishMultiplier: 1.5,
		CompetitionMultipliers: map[string]float64{
			"world":      2.5,
			"adcc":       2.0,
			"pan":        1.5,
			"european":   1.3,
			"brasileiro": 1.2,
		},
		StageMajor: map[string]float64{
			"final":        2.5,
			"semifinal":    2.0,
			"quarterfinal": 1.25,
		},
		StageOther: map[string]float64{
			"final":        2.0,
			"semifinal":    1.1,
			"quarterfinal": 1.0,
		},
	}
}

// lookupKeyword finds a table entry whose keyword is a case-insensitive
// substring of text. When several keywords match, the longest wins, with a
// lexicographic tie-break so the result never depends on map iteration
// order.
func lookupKeyword(table map[string]float64, text string) (float64, bool) {
	if text == "" || len(table) == 0 {
		return 0, false
	}
	lowered := strings.ToLower(text)
	var (
		best  string
		value float64
		found bool
	)
	for keyword, v := range table {
		if !strings.Contains(lowered, strings.ToLower(keyword)) {
			continue
		}
		if !found || len(keyword) > len(best) || (len(keyword) == len(best) && keyword < best) {
			best, value, found = keyword, v, true
		}
	}
	return value, found
}

// methodMultiplier scales a winner's delta by how the win was earned.
func (e *Engine) methodMultiplier(method string) float64 {
	method = strings.TrimSpace(method)
	if method == "" {
		return 1.0
	}
	if v, ok := lookupKeyword(e.cfg.MethodMultipliers, method); ok {
		return v
	}
	return e.cfg.FinishMultiplier
}

// competitionMultiplier scales a winner's delta by event prestige.
func (e *Engine) competitionMultiplier(competition string) float64 {
	if v, ok := lookupKeyword(e.cfg.CompetitionMultipliers, competition); ok {
		return v
	}
	return 1.0
}

// stageTier normalizes the raw bracket code ("F", "SF", "4F", ...) to a
// stage table key. Unrecognized codes get no stage weighting.
func stageTier(stage string) string {
	switch strings.ToLower(strings.TrimSpace(stage)) {
	case "f", "final":
		return "final"
	case "sf", "semifinal", "semi":
		return "semifinal"
	case "4f", "qf", "quarterfinal":
		return "quarterfinal"
	default:
		return ""
	}
}

// stageMultiplier weights both sides' deltas by bracket stage. The major
// table applies only when the competition name actually matches a prestige
// keyword; everything else uses the flatter table.
func (e *Engine) stageMultiplier(competition, stage string) float64 {
	tier := stageTier(stage)
	if tier == "" {
		return 1.0
	}
	table := e.cfg.StageOther
	if _, major := lookupKeyword(e.cfg.CompetitionMultipliers, competition); major {
		table = e.cfg.StageMajor
	}
	if v, ok := table[tier]; ok {
		return v
	}
	return 1.0
}
