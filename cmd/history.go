package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmesquita/bjjelo/internal/aggregate"
	"github.com/rmesquita/bjjelo/internal/export"
	"github.com/rmesquita/bjjelo/internal/model"
	"github.com/rmesquita/bjjelo/internal/names"
	"github.com/rmesquita/bjjelo/internal/report"
)

var (
	historyFighter string
	historyOut     string
)

var historyCmd = &cobra.Command{
	Use:   "history <matches.csv>",
	Short: "Print or export full rating trajectories",
	Long: `Rates the match table and prints every fighter's rating after each of
their matches, in chronological order. History is never filtered by the
min-matches threshold; every rated fighter appears.`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFighter, "fighter", "", "restrict to one fighter (any spelling)")
	historyCmd.Flags().StringVar(&historyOut, "out", "", "write rows to this CSV file instead of printing")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	states, _, err := runEngine(args[0], cfg)
	if err != nil {
		return err
	}

	if historyFighter != "" {
		key := names.Key(historyFighter)
		s, ok := states[key]
		if !ok {
			return fmt.Errorf("fighter %q not found in match table", historyFighter)
		}
		states = map[string]*model.FighterState{key: s}
	}

	rows := aggregate.History(states)
	if historyOut != "" {
		if err := export.WriteHistory(historyOut, rows); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d history rows to %s\n", len(rows), historyOut)
		return nil
	}
	report.PrintHistory(os.Stdout, rows)
	return nil
}
