// Package main provides a standalone schema validation tool for any CSV
// table, typically the merged artifact.
package main

import (
	"flag"
	"fmt"
	"os"

	"gamepipe/internal/pipeline"
	"gamepipe/internal/report"
	"gamepipe/internal/table"
)

func main() {
	input := flag.String("input", "data/processed/merged_data.csv", "Path to the CSV table to validate")
	flag.Parse()

	t, err := table.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading table: %v\n", err)
		os.Exit(1)
	}

	if violations := pipeline.Validate(t); len(violations) > 0 {
		fmt.Print(report.List("Validación fallida:", violations))
		os.Exit(1)
	}

	fmt.Println("Validación exitosa")
}
