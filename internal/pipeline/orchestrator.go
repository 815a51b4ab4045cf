package pipeline

import (
	"gamepipe/internal/config"
	"gamepipe/internal/logger"
	"gamepipe/internal/models"
	"gamepipe/internal/table"
)

// Runner sequences the pipeline stages: Ingest, Transform, Validate,
// Analyze. Validation is a gate: any violation stops the run before the
// analysis stage.
type Runner struct {
	cfg *config.Config
	log *logger.Logger
}

// NewRunner creates a runner over a configuration resolved once at startup.
func NewRunner(cfg *config.Config, log *logger.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Result describes the outcome of a pipeline run. A non-empty Violations
// list means the run stopped at the validation gate; Summary is nil in that
// case.
type Result struct {
	Merged     *table.Table
	Violations []string
	Summary    *models.AnalysisSummary
}

// Run executes the pipeline. Validation violations are a soft stop reported
// through the Result; errors are hard failures from ingestion,
// transformation or analysis.
func (r *Runner) Run() (*Result, error) {
	r.log.Info("starting pipeline", "config", r.cfg.String())

	r.log.Info("phase 1: ingestion")

	steam, twitch, err := Ingest(r.cfg, r.log)
	if err != nil {
		return nil, err
	}

	r.log.Info("phase 2: transformation")

	merged, err := Transform(steam, twitch, r.cfg.Paths.ProcessedData, r.log)
	if err != nil {
		return nil, err
	}

	r.log.Info("phase 3: validation")

	if violations := Validate(merged); len(violations) > 0 {
		r.log.Error("pipeline stopped by validation failures", "count", len(violations))

		return &Result{Merged: merged, Violations: violations}, nil
	}

	r.log.Info("phase 4: analysis")

	summary, err := Analyze(merged, r.cfg.Paths.ProcessedData, r.log)
	if err != nil {
		return nil, err
	}

	r.log.Info("pipeline complete")

	return &Result{Merged: merged, Summary: summary}, nil
}
