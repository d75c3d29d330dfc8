// Package export writes the flat tabular output artifacts. Ratings are
// rounded to two decimals here and nowhere earlier; the engine accumulates
// at full precision.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rmesquita/bjjelo/internal/model"
)

// Output file names, matching the shapes of the historical pipeline.
const (
	RatingsFile = "elo_ratings.csv"
	PeakFile    = "peak_elo.csv"
	HistoryFile = "rating_history.csv"
	YearEndFile = "year_end_top.csv"
)

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

func rating(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func year(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

// WriteLeaderboard writes the final ratings table.
func WriteLeaderboard(path string, rows []model.LeaderboardRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Name, rating(r.Rating), rating(r.PeakRating), year(r.PeakYear), strconv.Itoa(r.Matches),
		})
	}
	return writeCSV(path, []string{"Fighter", "Final_Rating", "Peak_Elo", "Peak_Year", "Matches"}, out)
}

// WritePeak writes the all-time peak table.
func WritePeak(path string, rows []model.PeakRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Name, rating(r.PeakRating), year(r.PeakYear)})
	}
	return writeCSV(path, []string{"Fighter", "Peak_Elo", "Year"}, out)
}

// WriteHistory writes the full flattened history.
func WriteHistory(path string, rows []model.HistoryRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Name, strconv.Itoa(r.Year), strconv.Itoa(r.SequenceID), rating(r.Rating),
		})
	}
	return writeCSV(path, []string{"Fighter", "Year", "ID", "Rating"}, out)
}

// WriteYearEnd writes the per-year top-N snapshots.
func WriteYearEnd(path string, rows []model.YearEndRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			strconv.Itoa(r.Year), strconv.Itoa(r.Rank), r.Name, rating(r.Rating),
		})
	}
	return writeCSV(path, []string{"Year", "Rank", "Fighter", "Rating"}, out)
}

// WriteAll writes every artifact into dir, creating it if needed.
func WriteAll(dir string, lb []model.LeaderboardRow, peaks []model.PeakRow, hist []model.HistoryRow, yearEnd []model.YearEndRow) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := WriteLeaderboard(filepath.Join(dir, RatingsFile), lb); err != nil {
		return err
	}
	if err := WritePeak(filepath.Join(dir, PeakFile), peaks); err != nil {
		return err
	}
	if err := WriteHistory(filepath.Join(dir, HistoryFile), hist); err != nil {
		return err
	}
	return WriteYearEnd(filepath.Join(dir, YearEndFile), yearEnd)
}
