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
	rateMinMatches int
	rateTopN       int
	rateOutDir     string
	ratePeaks      bool
)

var rateCmd = &cobra.Command{
	Use:   "rate <matches.csv>",
	Short: "Rate a match table and print the leaderboard",
	Long: `Loads a match record table, orders it chronologically, runs the rating
engine over it, and prints the run summary, the leaderboard, and the
year-end top-N snapshots. With --out, also writes the flat CSV artifacts
(ratings, peaks, full history, year-end snapshots) to a directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runRate,
}

func init() {
	rateCmd.Flags().IntVar(&rateMinMatches, "min-matches", 0, "leaderboard filter override (default from config)")
	rateCmd.Flags().IntVar(&rateTopN, "top-n", 0, "year-end top-N size override (default from config)")
	rateCmd.Flags().StringVar(&rateOutDir, "out", "", "directory for CSV artifacts (omit to print tables only)")
	rateCmd.Flags().BoolVar(&ratePeaks, "peaks", false, "also print the all-time peak table")
}

func runRate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("min-matches") {
		cfg.MinMatches = rateMinMatches
	}
	if cmd.Flags().Changed("top-n") {
		cfg.TopN = rateTopN
	}

	states, summary, err := runEngine(args[0], cfg)
	if err != nil {
		return err
	}

	leaderboard, counts := aggregate.Leaderboard(states, cfg.MinMatches)
	yearEnd := aggregate.YearEndTopN(states, cfg.TopN)

	report.PrintRunSummary(os.Stdout, summary, counts, cfg.MinMatches)
	report.PrintLeaderboard(os.Stdout, leaderboard)
	if ratePeaks {
		fmt.Fprintf(os.Stdout, "\n--- All-time peaks ---\n\n")
		report.PrintPeakTable(os.Stdout, aggregate.PeakTable(states))
	}
	fmt.Fprintf(os.Stdout, "\n--- Year-end top %d ---\n\n", cfg.TopN)
	report.PrintYearEnd(os.Stdout, yearEnd)

	if rateOutDir != "" {
		err := export.WriteAll(rateOutDir,
			leaderboard,
			aggregate.PeakTable(states),
			aggregate.History(states),
			yearEnd,
		)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nWrote %s, %s, %s, %s to %s\n",
			export.RatingsFile, export.PeakFile, export.HistoryFile, export.YearEndFile, rateOutDir)
	}
	return nil
}
