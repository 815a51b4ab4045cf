// Package main provides a post-run sanity check over the merged artifact:
// row counts, empty values per column and duplicate titles.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gamepipe/internal/report"
	"gamepipe/internal/table"
)

func main() {
	input := flag.String("input", "data/processed/merged_data.csv", "Path to the merged CSV artifact")
	sample := flag.Int("n", 10, "Maximum duplicate titles to list")
	flag.Parse()

	t, err := table.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", *input, err)
		os.Exit(1)
	}

	fmt.Printf("Rows: %d\n", t.Len())
	fmt.Printf("Columns: %s\n\n", strings.Join(t.Columns, ", "))

	fmt.Println("Empty values per column:")

	var rows [][]string

	for i, col := range t.Columns {
		empty := 0
		for _, row := range t.Rows {
			if row[i] == "" {
				empty++
			}
		}

		rows = append(rows, []string{col, strconv.Itoa(empty)})
	}

	fmt.Print(report.Render([]string{"column", "empty"}, rows))

	fmt.Println("\nRequired columns:")

	for _, col := range []string{"name", "genres", "price"} {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			fmt.Printf(" - %s: (missing)\n", col)

			continue
		}

		empty := 0
		for _, row := range t.Rows {
			if row[idx] == "" {
				empty++
			}
		}

		fmt.Printf(" - %s: %d empty\n", col, empty)
	}

	nameIdx := t.ColumnIndex("name")
	if nameIdx < 0 {
		fmt.Println("\nNo 'name' column in the merged table.")

		return
	}

	seen := make(map[string]int)
	for _, row := range t.Rows {
		seen[row[nameIdx]]++
	}

	var dups []string

	for _, row := range t.Rows {
		if seen[row[nameIdx]] > 1 {
			seen[row[nameIdx]] = 0 // report each title once

			dups = append(dups, row[nameIdx])
		}
	}

	fmt.Printf("\nDuplicate titles: %d\n", len(dups))

	if len(dups) > *sample {
		dups = dups[:*sample]
	}

	for _, name := range dups {
		fmt.Printf(" - %s\n", name)
	}
}
