package pipeline

import (
	"fmt"

	"gamepipe/internal/table"
)

// requiredColumns is the minimal schema contract of the merged table.
var requiredColumns = []string{"name", "genres", "price"}

// Validate checks a table against the minimal required-schema contract and
// returns an ordered list of violation messages; an empty list means valid.
// A missing required column short-circuits the remaining checks, since they
// assume the columns exist. Pure function, no side effects.
func Validate(t *table.Table) []string {
	var errors []string

	for _, col := range requiredColumns {
		if !t.HasColumn(col) {
			errors = append(errors, fmt.Sprintf("Falta la columna requerida: %s", col))
		}
	}

	if len(errors) > 0 {
		return errors
	}

	indexes := make([]int, len(requiredColumns))
	for i, col := range requiredColumns {
		indexes[i] = t.ColumnIndex(col)
	}

	empty := false

	for _, row := range t.Rows {
		for _, idx := range indexes {
			if row[idx] == "" {
				empty = true
			}
		}
	}

	if empty {
		errors = append(errors, "Valores vacíos encontrados")
	}

	nameIdx := t.ColumnIndex("name")
	seen := make(map[string]bool, t.Len())
	duplicated := false

	for _, row := range t.Rows {
		if seen[row[nameIdx]] {
			duplicated = true

			break
		}

		seen[row[nameIdx]] = true
	}

	if duplicated {
		errors = append(errors, "Hay juegos duplicados en la columna 'name'.")
	}

	priceIdx := t.ColumnIndex("price")

	var negative, unparseable bool

	for _, row := range t.Rows {
		if row[priceIdx] == "" {
			continue
		}

		v, err := parseFloat(row[priceIdx])
		if err != nil {
			unparseable = true

			continue
		}

		if v < 0 {
			negative = true
		}
	}

	switch {
	case unparseable:
		errors = append(errors, "No se pudo validar la columna 'price'.")
	case negative:
		errors = append(errors, "Existen precios negativos (inválido).")
	}

	return errors
}
