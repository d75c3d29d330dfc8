package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rmesquita/bjjelo/internal/aggregate"
	"github.com/rmesquita/bjjelo/internal/export"
	"github.com/rmesquita/bjjelo/internal/report"
)

var (
	seasonsTopN int
	seasonsOut  string
)

var seasonsCmd = &cobra.Command{
	Use:   "seasons <matches.csv>",
	Short: "Print year-end top-N rankings",
	Long: `Rates the match table and prints, for every year that has activity, the
top fighters ranked by their rating after their last match of that year.
A fighter inactive in a year does not appear in that year's snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeasons,
}

func init() {
	seasonsCmd.Flags().IntVar(&seasonsTopN, "top-n", 0, "snapshot size override (default from config)")
	seasonsCmd.Flags().StringVar(&seasonsOut, "out", "", "write rows to this CSV file instead of printing")
}

func runSeasons(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("top-n") {
		cfg.TopN = seasonsTopN
	}

	states, _, err := runEngine(args[0], cfg)
	if err != nil {
		return err
	}

	rows := aggregate.YearEndTopN(states, cfg.TopN)
	if seasonsOut != "" {
		if err := export.WriteYearEnd(seasonsOut, rows); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d year-end rows to %s\n", len(rows), seasonsOut)
		return nil
	}
	report.PrintYearEnd(os.Stdout, rows)
	return nil
}
