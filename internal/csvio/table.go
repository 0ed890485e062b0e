package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Table is a raw CSV file read into memory with normalized headers. It is
// the shape used for inputs whose columns vary by source; typed tables go
// through the gocsv helpers in file.go instead.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NormalizeHeader lowercases a header and replaces spaces with underscores,
// matching how every stage names its columns.
func NormalizeHeader(h string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
}

// ReadTable loads a CSV file with header normalization. Ragged rows are
// padded or truncated to the header width rather than rejected.
func ReadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readTable(f)
}

// ReadTableLatin1 is ReadTable for Latin-1 encoded exports.
func ReadTableLatin1(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readTable(charmap.ISO8859_1.NewDecoder().Reader(f))
}

func readTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(headers))
		for i := range headers {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}, nil
}

// WriteTable writes a dynamic-schema table, for outputs whose column names
// are only known at run time.
func WriteTable(path string, headers []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// Column reports the index of the first candidate name that exists,
// resolving the preferred-name-then-suffixed-duplicate convention once at
// load time.
func (t *Table) Column(candidates ...string) (int, bool) {
	for _, want := range candidates {
		for i, h := range t.Headers {
			if h == want {
				return i, true
			}
		}
	}
	return -1, false
}

// MustColumn is Column with a structural error naming every candidate tried
// and every header actually present.
func (t *Table) MustColumn(candidates ...string) (int, error) {
	if i, ok := t.Column(candidates...); ok {
		return i, nil
	}
	return -1, fmt.Errorf("missing required column (tried %s); available columns: %s",
		strings.Join(candidates, ", "), strings.Join(t.Headers, ", "))
}

// Get returns the cell at (row, col), empty when col is out of range.
func (t *Table) Get(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// DropEmptyColumns removes columns whose every cell is blank, as spreadsheet
// exports routinely carry trailing junk columns.
func (t *Table) DropEmptyColumns() {
	keep := make([]int, 0, len(t.Headers))
	for i := range t.Headers {
		empty := true
		for _, row := range t.Rows {
			if t.Get(row, i) != "" {
				empty = false
				break
			}
		}
		if !empty {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Headers) {
		return
	}
	headers := make([]string, len(keep))
	for j, i := range keep {
		headers[j] = t.Headers[i]
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		nr := make([]string, len(keep))
		for j, i := range keep {
			nr[j] = t.Get(row, i)
		}
		rows[r] = nr
	}
	t.Headers = headers
	t.Rows = rows
}
