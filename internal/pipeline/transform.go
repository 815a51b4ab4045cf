package pipeline

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gamepipe/internal/genre"
	"gamepipe/internal/logger"
	"gamepipe/internal/price"
	"gamepipe/internal/table"
	"gamepipe/pkg/utils"
)

// MergedFile is the name of the processed merged-table artifact.
const MergedFile = "merged_data.csv"

// aggregation kinds for the stream metrics.
const (
	aggSum = iota
	aggMax
	aggMean
)

type metricAgg struct {
	column string
	kind   int
}

// streamAggs fixes the aggregation function per Twitch metric: cumulative
// metrics are summed, peaks are maxed, rates are averaged. The slice order
// is also the column order of the aggregated table.
var streamAggs = []metricAgg{
	{"hours_watched", aggSum},
	{"hours_streamed", aggSum},
	{"peak_viewers", aggMax},
	{"peak_channels", aggMax},
	{"streamers", aggSum},
	{"avg_viewers", aggMean},
	{"avg_channels", aggMean},
	{"avg_viewer_ratio", aggMean},
}

// Transform cleans both raw tables and merges them into one table keyed by
// lowercase game title, persisting the result under processedDir. Later
// steps depend on earlier cleanup, so the step order is fixed. Both input
// tables are modified in place during cleaning.
func Transform(steam, twitch *table.Table, processedDir string, log *logger.Logger) (*table.Table, error) {
	cleanSteam(steam)
	cleanTwitch(twitch)

	twitchAgg := aggregateTwitch(twitch)
	dedupeSteam(steam)

	merged := innerJoin(steam, twitchAgg)

	out := filepath.Join(processedDir, MergedFile)
	if err := merged.WriteFile(out); err != nil {
		return nil, err
	}

	log.Info("transformation complete",
		"steam_rows", steam.Len(),
		"twitch_titles", twitchAgg.Len(),
		"merged_rows", merged.Len(),
		"output", out)

	return merged, nil
}

// cleanSteam derives the normalized genre, title key and numeric price
// columns on the catalog table and drops rows that cannot participate in
// the merge.
func cleanSteam(steam *table.Table) {
	genresIdx := steam.ColumnIndex("genres")
	genreIdx := steam.EnsureColumn("genre")

	if genresIdx >= 0 {
		for _, row := range steam.Rows {
			if desc, ok := genre.First(row[genresIdx]); ok {
				row[genreIdx] = genre.Normalize(desc)
			} else {
				row[genreIdx] = genre.Normalize(nil)
			}
		}
	}

	nameIdx := steam.ColumnIndex("name")
	gameIdx := steam.EnsureColumn("game")

	if nameIdx >= 0 {
		for _, row := range steam.Rows {
			row[gameIdx] = utils.NormalizeKey(row[nameIdx])
		}
	}

	overviewIdx := steam.ColumnIndex("price_overview")
	priceIdx := steam.EnsureColumn("price")

	if overviewIdx >= 0 {
		for _, row := range steam.Rows {
			if v, ok := price.Extract(row[overviewIdx]); ok {
				row[priceIdx] = formatFloat(v)
			}
		}
	}

	// Back-fill the raw genres column from the normalized label so the
	// required-schema contract holds downstream.
	if genresIdx >= 0 {
		for _, row := range steam.Rows {
			if row[genresIdx] == "" {
				row[genresIdx] = row[genreIdx]
			}
		}
	}

	// Free games must never be dropped for lack of a priced field.
	if freeIdx := steam.ColumnIndex("is_free"); freeIdx >= 0 {
		for _, row := range steam.Rows {
			if row[priceIdx] == "" && isTrue(row[freeIdx]) {
				row[priceIdx] = "0"
			}
		}
	}

	steam.Filter(func(row []string) bool {
		if row[gameIdx] == "" {
			return false
		}

		if genresIdx >= 0 && row[genresIdx] == "" {
			return false
		}

		return row[priceIdx] != ""
	})
}

// cleanTwitch derives the title key on the stream table, coerces the metric
// columns to numeric form (non-numeric becomes missing) and drops unkeyed
// rows.
func cleanTwitch(twitch *table.Table) {
	twitch.LowerColumns()

	gameIdx := twitch.EnsureColumn("game")
	for _, row := range twitch.Rows {
		row[gameIdx] = utils.NormalizeKey(row[gameIdx])
	}

	for _, agg := range streamAggs {
		idx := twitch.ColumnIndex(agg.column)
		if idx < 0 {
			continue
		}

		for _, row := range twitch.Rows {
			if v, err := parseFloat(row[idx]); err == nil {
				row[idx] = formatFloat(v)
			} else {
				row[idx] = ""
			}
		}
	}

	twitch.Filter(func(row []string) bool {
		return row[gameIdx] != ""
	})
}

// aggregateTwitch collapses the per-period stream rows into one row per
// title. Groups are emitted in first-seen order so repeated runs produce
// identical output.
func aggregateTwitch(twitch *table.Table) *table.Table {
	gameIdx := twitch.ColumnIndex("game")

	cols := []string{"game"}

	var present []metricAgg

	for _, agg := range streamAggs {
		if twitch.HasColumn(agg.column) {
			present = append(present, agg)
			cols = append(cols, agg.column)
		}
	}

	out := table.New(cols...)

	if len(present) == 0 {
		// No metrics to aggregate: fall back to deduplicating by title.
		seen := make(map[string]bool)
		for _, row := range twitch.Rows {
			if !seen[row[gameIdx]] {
				seen[row[gameIdx]] = true
				out.Append([]string{row[gameIdx]})
			}
		}

		return out
	}

	var order []string

	groups := make(map[string][][]string)

	for _, row := range twitch.Rows {
		key := row[gameIdx]
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}

		groups[key] = append(groups[key], row)
	}

	for _, key := range order {
		cells := []string{key}
		for _, agg := range present {
			idx := twitch.ColumnIndex(agg.column)
			cells = append(cells, aggregate(groups[key], idx, agg.kind))
		}

		out.Append(cells)
	}

	return out
}

// aggregate reduces one metric column over a group of rows, skipping
// missing values. Returns "" when no value is present.
func aggregate(rows [][]string, idx, kind int) string {
	var (
		sum   float64
		peak  float64
		count int
	)

	for _, row := range rows {
		v, err := parseFloat(row[idx])
		if err != nil {
			continue
		}

		if count == 0 || v > peak {
			peak = v
		}

		sum += v
		count++
	}

	if count == 0 {
		return ""
	}

	switch kind {
	case aggMax:
		return formatFloat(peak)
	case aggMean:
		return formatFloat(sum / float64(count))
	default:
		return formatFloat(sum)
	}
}

// dedupeSteam keeps one catalog row per title. When period markers exist the
// most recent row wins; otherwise the first occurrence is kept.
func dedupeSteam(steam *table.Table) {
	gameIdx := steam.ColumnIndex("game")
	yearIdx := steam.ColumnIndex("year")
	monthIdx := steam.ColumnIndex("month")

	if yearIdx >= 0 && monthIdx >= 0 {
		sort.SliceStable(steam.Rows, func(a, b int) bool {
			ya, yb := periodValue(steam.Rows[a][yearIdx]), periodValue(steam.Rows[b][yearIdx])
			if ya != yb {
				return ya > yb
			}

			return periodValue(steam.Rows[a][monthIdx]) > periodValue(steam.Rows[b][monthIdx])
		})
	}

	seen := make(map[string]bool)

	steam.Filter(func(row []string) bool {
		if seen[row[gameIdx]] {
			return false
		}

		seen[row[gameIdx]] = true

		return true
	})
}

// innerJoin joins the catalog table with the aggregated stream table on the
// title key. Titles present in only one source are dropped. Left (catalog)
// row order is preserved.
func innerJoin(steam, twitchAgg *table.Table) *table.Table {
	rightGameIdx := twitchAgg.ColumnIndex("game")

	right := make(map[string][]string, twitchAgg.Len())
	for _, row := range twitchAgg.Rows {
		right[row[rightGameIdx]] = row
	}

	cols := make([]string, 0, len(steam.Columns)+len(twitchAgg.Columns)-1)
	cols = append(cols, steam.Columns...)

	for i, c := range twitchAgg.Columns {
		if i != rightGameIdx {
			cols = append(cols, c)
		}
	}

	merged := table.New(cols...)

	leftGameIdx := steam.ColumnIndex("game")

	for _, row := range steam.Rows {
		match, ok := right[row[leftGameIdx]]
		if !ok {
			continue
		}

		cells := make([]string, 0, len(cols))
		cells = append(cells, row...)

		for i, v := range match {
			if i != rightGameIdx {
				cells = append(cells, v)
			}
		}

		merged.Append(cells)
	}

	return merged
}

func isTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// formatFloat serializes derived numerics with the shortest exact
// decimal representation so repeated runs are byte-identical.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// periodValue parses a year/month marker for most-recent-wins ordering.
// Unparseable markers sort last.
func periodValue(s string) float64 {
	v, err := parseFloat(s)
	if err != nil {
		return -1
	}

	return v
}
