package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rmesquita/bjjelo/internal/scrape"
)

var (
	fetchOut     string
	fetchWorkers int
	fetchLimit   int
	fetchBaseURL string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Scrape the source site into a raw match table",
	Long: `Discovers every fighter page through the site's post sitemap, downloads
the pages with a bounded worker pool, and writes the concatenated raw
match tables as one CSV. Individual page failures are reported and
skipped; the run only aborts if the sitemap itself cannot be read.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchOut, "out", "fighter_matches.csv", "output CSV path")
	fetchCmd.Flags().IntVar(&fetchWorkers, "workers", 8, "concurrent page downloads")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 0, "fetch at most this many fighters (0 = all)")
	fetchCmd.Flags().StringVar(&fetchBaseURL, "base-url", scrape.DefaultBaseURL, "site root to scrape")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client := scrape.NewClient(fetchBaseURL)

	slugs, err := client.FighterSlugs(ctx)
	if err != nil {
		return fmt.Errorf("discover fighter pages: %w", err)
	}
	if fetchLimit > 0 && len(slugs) > fetchLimit {
		slugs = slugs[:fetchLimit]
	}
	fmt.Fprintf(os.Stdout, "Discovered %d fighter pages\n", len(slugs))

	fighters, failures := client.FetchAll(ctx, slugs, fetchWorkers, func(done, total int) {
		if done%50 == 0 || done == total {
			fmt.Fprintf(os.Stdout, "Fetched %d/%d\n", done, total)
		}
	})
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "warning: skipped %v\n", f)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeRawMatches(fetchOut, fighters); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Wrote %d fighters (%d failed) to %s\n", len(fighters), len(failures), fetchOut)
	return nil
}

// writeRawMatches flattens scraped match tables into one CSV. The header is
// the sorted union of every per-fighter table header, so no source column is
// lost when page layouts differ and re-runs produce identical files.
func writeRawMatches(path string, fighters []*scrape.Fighter) error {
	seen := make(map[string]struct{})
	for _, f := range fighters {
		for _, m := range f.Matches {
			for col := range m {
				seen[col] = struct{}{}
			}
		}
	}
	columns := make([]string, 0, len(seen))
	for col := range seen {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{"Fighter_Name", "Fighter_URL"}, columns...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, fighter := range fighters {
		for _, m := range fighter.Matches {
			row := make([]string, 0, len(header))
			row = append(row, fighter.Name, "/bjj-fighters/"+fighter.Slug)
			for _, col := range columns {
				row = append(row, m[col])
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
