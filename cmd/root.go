package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmesquita/bjjelo/internal/config"
	"github.com/rmesquita/bjjelo/internal/engine"
	"github.com/rmesquita/bjjelo/internal/feed"
	"github.com/rmesquita/bjjelo/internal/model"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "bjjelo",
	Short: "BJJ match Elo rating tool",
	Long:  "Compute Elo-style ratings, peaks, and year-end rankings from a chronological BJJ match record table.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (default: $BJJELO_CONFIG)")

	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(namesCmd)
	rootCmd.AddCommand(fetchCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// runEngine loads, orders, and rates the match table at path, returning the
// final state map and the run accounting.
func runEngine(path string, cfg *config.Config) (map[string]*model.FighterState, model.RunSummary, error) {
	matches, err := feed.Load(path)
	if err != nil {
		return nil, model.RunSummary{}, fmt.Errorf("load matches: %w", err)
	}

	eng := engine.New(cfg.Engine())
	if err := eng.Apply(matches); err != nil {
		return nil, model.RunSummary{}, fmt.Errorf("rate matches: %w", err)
	}
	return eng.States(), eng.Summary(), nil
}
