package cmd

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rmesquita/bjjelo/internal/feed"
	"github.com/rmesquita/bjjelo/internal/names"
	"github.com/rmesquita/bjjelo/internal/report"
)

var namesCmd = &cobra.Command{
	Use:   "names <matches.csv>",
	Short: "Report fighter identities merged by name canonicalization",
	Long: `Scans every fighter and opponent name in the match table and reports the
identities where canonicalization collapsed more than one raw spelling
into a single fighter. Useful for auditing accent, whitespace, and
doubled-name repairs before trusting the ratings.`,
	Args: cobra.ExactArgs(1),
	RunE: runNames,
}

func runNames(cmd *cobra.Command, args []string) error {
	matches, err := feed.Load(args[0])
	if err != nil {
		return err
	}

	spellings := make(map[string]map[string]struct{})
	note := func(raw string) {
		key := names.Key(raw)
		if key == "" {
			return
		}
		if spellings[key] == nil {
			spellings[key] = make(map[string]struct{})
		}
		spellings[key][raw] = struct{}{}
	}
	for _, m := range matches {
		note(m.FighterName)
		note(m.OpponentName)
	}

	var groups []report.MergeGroup
	for key, set := range spellings {
		if len(set) < 2 {
			continue
		}
		g := report.MergeGroup{Key: key}
		for raw := range set {
			g.Spellings = append(g.Spellings, raw)
		}
		sort.Strings(g.Spellings)
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	report.PrintMergeGroups(os.Stdout, groups)
	return nil
}
