// Package table provides a small ordered-column table used throughout the
// pipeline. Cells are strings; the empty string represents a missing value.
package table

import "strings"

// Table holds tabular data with a fixed column order. Rows are kept in
// insertion order and every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New creates an empty table with the given column order.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}

	return -1
}

// HasColumn reports whether the column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// EnsureColumn returns the index of the column, appending an empty column
// first if it does not exist yet.
func (t *Table) EnsureColumn(name string) int {
	if i := t.ColumnIndex(name); i >= 0 {
		return i
	}

	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}

	return len(t.Columns) - 1
}

// Append adds a row, padding or truncating it to the column count.
func (t *Table) Append(row []string) {
	cells := make([]string, len(t.Columns))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
}

// Column returns a copy of all values in the named column, or nil if the
// column is absent.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}

	return values
}

// Filter keeps only the rows for which keep returns true, preserving order.
func (t *Table) Filter(keep func(row []string) bool) {
	kept := t.Rows[:0]

	for _, row := range t.Rows {
		if keep(row) {
			kept = append(kept, row)
		}
	}

	t.Rows = kept
}

// LowerColumns lowercases all column names.
func (t *Table) LowerColumns() {
	for i, c := range t.Columns {
		t.Columns[i] = strings.ToLower(c)
	}
}
