package pipeline

import (
	"path/filepath"

	"gamepipe/internal/logger"
	"gamepipe/internal/models"
	"gamepipe/internal/stats"
	"gamepipe/internal/table"
)

// AnalysisFile is the name of the single-row analysis artifact.
const AnalysisFile = "analysis_results.csv"

// Analyze computes the summary statistics over the merged table and persists
// them under processedDir. A statistic that cannot be computed from the
// available data (too few pairs, fewer than two genre groups) is left absent
// in the summary; the run still completes.
func Analyze(merged *table.Table, processedDir string, log *logger.Logger) (*models.AnalysisSummary, error) {
	summary := &models.AnalysisSummary{}

	// Spearman correlation between watch hours and average viewers, with
	// pairwise omission of non-numeric values.
	hoursIdx := merged.ColumnIndex("hours_watched")
	viewersIdx := merged.ColumnIndex("avg_viewers")

	var xs, ys []float64

	if hoursIdx >= 0 && viewersIdx >= 0 {
		for _, row := range merged.Rows {
			x, errX := parseFloat(row[hoursIdx])
			y, errY := parseFloat(row[viewersIdx])

			if errX != nil || errY != nil {
				continue
			}

			xs = append(xs, x)
			ys = append(ys, y)
		}
	}

	if rho, p, ok := stats.Spearman(xs, ys); ok {
		summary.SpearmanCorr = &rho
		summary.SpearmanP = &p
	} else {
		log.Warn("insufficient data for Spearman correlation", "pairs", len(xs))
	}

	// Kruskal-Wallis of average viewers across genre groups, first-seen
	// group order.
	genreIdx := merged.ColumnIndex("genre")

	var (
		order  []string
		groups = make(map[string][]float64)
	)

	if genreIdx >= 0 && viewersIdx >= 0 {
		for _, row := range merged.Rows {
			v, err := parseFloat(row[viewersIdx])
			if err != nil {
				continue
			}

			key := row[genreIdx]
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}

			groups[key] = append(groups[key], v)
		}
	}

	grouped := make([][]float64, 0, len(order))
	for _, key := range order {
		grouped = append(grouped, groups[key])
	}

	if h, p, ok := stats.KruskalWallis(grouped); ok {
		summary.KruskalStat = &h
		summary.KruskalP = &p
	} else {
		log.Warn("insufficient data for Kruskal-Wallis test", "groups", len(grouped))
	}

	out := filepath.Join(processedDir, AnalysisFile)

	result := table.New(summary.Columns()...)
	result.Append([]string{
		formatOptional(summary.SpearmanCorr),
		formatOptional(summary.SpearmanP),
		formatOptional(summary.KruskalStat),
		formatOptional(summary.KruskalP),
	})

	if err := result.WriteFile(out); err != nil {
		return nil, err
	}

	log.Info("analysis complete", "output", out)

	return summary, nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}

	return formatFloat(*v)
}
