package table

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTable_Columns(t *testing.T) {
	tbl := New("name", "price")
	tbl.Append([]string{"Halo", "30"})

	if !tbl.HasColumn("price") {
		t.Error("HasColumn(price) = false")
	}

	if tbl.ColumnIndex("missing") != -1 {
		t.Error("ColumnIndex(missing) should be -1")
	}

	idx := tbl.EnsureColumn("genre")
	if idx != 2 {
		t.Errorf("EnsureColumn returned %d, want 2", idx)
	}

	if len(tbl.Rows[0]) != 3 {
		t.Errorf("existing row not padded: len = %d, want 3", len(tbl.Rows[0]))
	}

	// Ensuring an existing column must not add another.
	if again := tbl.EnsureColumn("genre"); again != idx {
		t.Errorf("EnsureColumn(existing) = %d, want %d", again, idx)
	}
}

func TestTable_AppendPads(t *testing.T) {
	tbl := New("a", "b", "c")
	tbl.Append([]string{"1"})
	tbl.Append([]string{"1", "2", "3", "4"})

	for i, row := range tbl.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row))
		}
	}
}

func TestTable_Filter(t *testing.T) {
	tbl := New("v")
	tbl.Append([]string{"keep"})
	tbl.Append([]string{"drop"})
	tbl.Append([]string{"keep"})

	tbl.Filter(func(row []string) bool { return row[0] == "keep" })

	if tbl.Len() != 2 {
		t.Errorf("Len = %d, want 2", tbl.Len())
	}
}

func TestTable_LowerColumns(t *testing.T) {
	tbl := New("Game", "Hours_Watched")
	tbl.LowerColumns()

	if tbl.Columns[0] != "game" || tbl.Columns[1] != "hours_watched" {
		t.Errorf("LowerColumns = %v", tbl.Columns)
	}
}

func TestReadFile_Latin1Tolerance(t *testing.T) {
	// 0xF3 is "ó" in Latin-1 and an invalid byte sequence in UTF-8; the
	// read must tolerate it.
	raw := append([]byte("name,genre\nAcci"), 0xF3)
	raw = append(raw, []byte("n Game,Action\n")...)

	path := filepath.Join(t.TempDir(), "latin1.csv")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tbl, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed on Latin-1 bytes: %v", err)
	}

	if tbl.Len() != 1 {
		t.Fatalf("rows = %d, want 1", tbl.Len())
	}

	if got := tbl.Rows[0][0]; got != "Acción Game" {
		t.Errorf("cell = %q, want %q", got, "Acción Game")
	}
}

func TestReadFile_RaggedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	content := "a,b,c\n1,2\n1,2,3,4\n"

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tbl, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	for i, row := range tbl.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row))
		}
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("ReadFile on missing file should fail")
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.csv")

	tbl := New("name", "price")
	tbl.Append([]string{"Halo", "30"})
	tbl.Append([]string{"Comma, Game", "20"})

	if err := tbl.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if got.Len() != 2 {
		t.Fatalf("rows = %d, want 2", got.Len())
	}

	if got.Rows[1][0] != "Comma, Game" {
		t.Errorf("quoted cell = %q, want %q", got.Rows[1][0], "Comma, Game")
	}
}
