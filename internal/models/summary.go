// Package models defines the records shared between pipeline stages.
package models

// AnalysisSummary is the single-row statistical result persisted after a
// successful run. Nil fields mean the statistic could not be computed from
// the available data (an informational outcome, not a failure).
type AnalysisSummary struct {
	SpearmanCorr *float64
	SpearmanP    *float64
	KruskalStat  *float64
	KruskalP     *float64
}

// Columns is the column order of the persisted analysis artifact.
func (AnalysisSummary) Columns() []string {
	return []string{"spearman_corr", "spearman_p", "kruskal_stat", "kruskal_p"}
}
