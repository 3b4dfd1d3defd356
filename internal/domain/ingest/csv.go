package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrEmptyInput = errors.New("csv input is empty")
	ErrNoDataRows = errors.New("csv input contains only a header row")
	// ErrConflict reports a uniqueness violation while committing the batch.
	// Nothing is persisted in that case.
	ErrConflict = errors.New("batch commit hit a uniqueness conflict")
)

// MissingColumnsError aborts an ingestion before any row is read.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("csv header is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// record is one data row keyed by header name. line is 1-indexed against the
// original input, so the first data row is line 2.
type record struct {
	line   int
	fields map[string]string
}

type table struct {
	header []string
	rows   []record
}

func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrEmptyInput
	}

	header := all[0]
	if len(header) > 0 {
		// utf-8-sig exports prefix the first column name with a BOM
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	tbl := &table{header: header}
	for i, raw := range all[1:] {
		fields := make(map[string]string, len(header))
		for j, name := range header {
			if j < len(raw) {
				fields[name] = strings.TrimSpace(raw[j])
			}
		}
		tbl.rows = append(tbl.rows, record{line: i + 2, fields: fields})
	}
	return tbl, nil
}

func (t *table) missingColumns(required ...string) []string {
	present := make(map[string]bool, len(t.header))
	for _, name := range t.header {
		present[name] = true
	}
	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// Result reports one ingestion batch: rows persisted, rows skipped as
// duplicates, and 1-indexed row-level error descriptions.
type Result struct {
	Added   int      `json:"added"`
	Skipped int      `json:"duplicates_skipped"`
	Errors  []string `json:"errors"`
}
