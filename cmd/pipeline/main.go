// Package main provides the full pipeline run: ingestion, transformation,
// validation and analysis of the Steam and Twitch datasets.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gamepipe/internal/config"
	"gamepipe/internal/logger"
	"gamepipe/internal/pipeline"
	"gamepipe/internal/report"
)

func main() {
	configPath := flag.String("config", "config/pipeline_config.yaml", "Path to YAML configuration file")
	logLevel := flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}

	log := logger.NewLogger(level)

	start := time.Now()

	runner := pipeline.NewRunner(cfg, log)

	result, err := runner.Run()
	if err != nil {
		log.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	if len(result.Violations) > 0 {
		fmt.Print(report.List("Pipeline stopped by validation failures:", result.Violations))
		os.Exit(1)
	}

	s := result.Summary
	fmt.Println()
	fmt.Print(report.Render(
		[]string{"statistic", "value"},
		[][]string{
			{"spearman_corr", formatStat(s.SpearmanCorr)},
			{"spearman_p", formatStat(s.SpearmanP)},
			{"kruskal_stat", formatStat(s.KruskalStat)},
			{"kruskal_p", formatStat(s.KruskalP)},
			{"merged_rows", fmt.Sprintf("%d", result.Merged.Len())},
			{"duration", time.Since(start).Round(time.Millisecond).String()},
		},
	))
}

func formatStat(v *float64) string {
	if v == nil {
		return "(insufficient data)"
	}

	return fmt.Sprintf("%.6f", *v)
}
