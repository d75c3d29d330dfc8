// Package config loads the rating model and output configuration by
// layering defaults, an optional YAML file, and BJJELO_* environment
// variables.
package config

import (
	"github.com/rmesquita/bjjelo/internal/engine"
)

// Config is the full tool configuration.
type Config struct {
	// Rating model.
	InitialRating      float64 `koanf:"initial_rating"`
	KNew               float64 `koanf:"k_new"`
	KEstablished       float64 `koanf:"k_established"`
	ProvisionalMatches int     `koanf:"provisional_matches"`

	// Multiplier tables: case-insensitive substring keywords, longest
	// keyword wins.
	MethodMultipliers      map[string]float64 `koanf:"method_multipliers"`
	FinishMultiplier       float64            `koanf:"finish_multiplier"`
	CompetitionMultipliers map[string]float64 `koanf:"competition_multipliers"`
	StageMajor             map[string]float64 `koanf:"stage_major"`
	StageOther             map[string]float64 `koanf:"stage_other"`

	// Input hygiene.
	SkipSelfPlay bool `koanf:"skip_self_play"`

	// Output shaping.
	MinMatches int `koanf:"min_matches"`
	TopN       int `koanf:"top_n"`
}

// Default returns the built-in configuration.
func Default() *Config {
	e := engine.DefaultConfig()
	return &Config{
		InitialRating:          e.InitialRating,
		KNew:                   e.KNew,
		KEstablished:           e.KEstablished,
		ProvisionalMatches:     e.ProvisionalMatches,
		MethodMultipliers:      e.MethodMultipliers,
		FinishMultiplier:       e.FinishMultiplier,
		CompetitionMultipliers: e.CompetitionMultipliers,
		StageMajor:             e.StageMajor,
		StageOther:             e.StageOther,
		MinMatches:             10,
		TopN:                   3,
	}
}

// Engine converts the loaded configuration into the engine's parameter set.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		InitialRating:          c.InitialRating,
		KNew:                   c.KNew,
		KEstablished:           c.KEstablished,
		ProvisionalMatches:     c.ProvisionalMatches,
		MethodMultipliers:      c.MethodMultipliers,
		FinishMultiplier:       c.FinishMultiplier,
		CompetitionMultipliers: c.CompetitionMultipliers,
		StageMajor:             c.StageMajor,
		StageOther:             c.StageOther,
		SkipSelfPlay:           c.SkipSelfPlay,
	}
}
