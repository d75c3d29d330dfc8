package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, lowest precedence first:
//  1. built-in defaults
//  2. YAML file at path (or $BJJELO_CONFIG when path is empty)
//  3. environment variables with the BJJELO_ prefix
//     (BJJELO_K_NEW -> k_new, BJJELO_MIN_MATCHES -> min_matches, ...)
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("BJJELO_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("BJJELO_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "bjjelo_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.InitialRating <= 0 {
		return fmt.Errorf("initial_rating must be positive, got %v", c.InitialRating)
	}
	if c.KNew <= 0 || c.KEstablished <= 0 {
		return fmt.Errorf("k_new and k_established must be positive, got %v and %v", c.KNew, c.KEstablished)
	}
	if c.ProvisionalMatches < 0 {
		return fmt.Errorf("provisional_matches must not be negative, got %d", c.ProvisionalMatches)
	}
	if c.FinishMultiplier <= 0 {
		return fmt.Errorf("finish_multiplier must be positive, got %v", c.FinishMultiplier)
	}
	if c.MinMatches < 0 {
		return fmt.Errorf("min_matches must not be negative, got %d", c.MinMatches)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	for _, table := range []struct {
		name string
		m    map[string]float64
	}{
		{"method_multipliers", c.MethodMultipliers},
		{"competition_multipliers", c.CompetitionMultipliers},
		{"stage_major", c.StageMajor},
		{"stage_other", c.StageOther},
	} {
		for key, v := range table.m {
			if v <= 0 {
				return fmt.Errorf("%s[%q] must be positive, got %v", table.name, key, v)
			}
		}
	}
	return nil
}
