package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp: %v", err)
	}
	return path
}

func TestReadTable_NormalizesHeadersAndPadsRows(t *testing.T) {
	path := writeTemp(t, "Order Time,Total Paid,Extra\n1,2\n3,4,5,6\n")
	tbl, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := strings.Join(tbl.Headers, "|"); got != "order_time|total_paid|extra" {
		t.Fatalf("headers = %q", got)
	}
	if len(tbl.Rows) != 2 || len(tbl.Rows[0]) != 3 || len(tbl.Rows[1]) != 3 {
		t.Fatalf("rows not padded to header width: %+v", tbl.Rows)
	}
	if tbl.Rows[0][2] != "" || tbl.Rows[1][2] != "5" {
		t.Fatalf("cell padding wrong: %+v", tbl.Rows)
	}
}

func TestMustColumn_ErrorNamesCandidatesAndHeaders(t *testing.T) {
	tbl := &Table{Headers: []string{"a", "b"}}
	if _, err := tbl.MustColumn("shift_start", "shift_start.1"); err == nil {
		t.Fatalf("expected error")
	} else {
		msg := err.Error()
		for _, want := range []string{"shift_start", "shift_start.1", "a", "b"} {
			if !strings.Contains(msg, want) {
				t.Fatalf("error %q missing %q", msg, want)
			}
		}
	}
}

func TestColumn_PrefersFirstCandidate(t *testing.T) {
	tbl := &Table{Headers: []string{"shift_start.1", "shift_start"}}
	i, ok := tbl.Column("shift_start", "shift_start.1")
	if !ok || i != 1 {
		t.Fatalf("got index %d ok=%v, want the preferred name first", i, ok)
	}
}

func TestDropEmptyColumns(t *testing.T) {
	tbl := &Table{
		Headers: []string{"keep", "junk", "also"},
		Rows:    [][]string{{"x", "", "1"}, {"y", "", "2"}},
	}
	tbl.DropEmptyColumns()
	if len(tbl.Headers) != 2 || tbl.Headers[0] != "keep" || tbl.Headers[1] != "also" {
		t.Fatalf("headers = %+v", tbl.Headers)
	}
	if tbl.Rows[1][1] != "2" {
		t.Fatalf("rows not re-projected: %+v", tbl.Rows)
	}
}
