package ingest

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"hrbus/internal/domain/employee"
)

// Notes ingests a note CSV with columns employee_matricula, text and an
// optional category. Rows naming an unknown employee are reported as errors
// and dropped; the batch itself still commits.
func Notes(ctx context.Context, store NoteStore, r io.Reader) (Result, error) {
	var res Result

	tbl, err := readTable(r)
	if err != nil {
		return res, err
	}

	var staged []employee.Note
	for _, rec := range tbl.rows {
		matricula, err := strconv.ParseInt(rec.fields["employee_matricula"], 10, 64)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid employee_matricula %q", rec.line, rec.fields["employee_matricula"]))
			continue
		}
		if rec.fields["text"] == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: missing 'text'", rec.line))
			continue
		}

		exists, err := store.EmployeeExists(ctx, matricula)
		if err != nil {
			return res, err
		}
		if !exists {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: employee %d not found, note skipped", rec.line, matricula))
			continue
		}

		staged = append(staged, employee.Note{
			EmployeeMatricula: matricula,
			Text:              rec.fields["text"],
			Category:          rec.fields["category"],
		})
	}

	if len(staged) > 0 {
		if err := store.InsertNotes(ctx, staged); err != nil {
			return res, err
		}
		res.Added = len(staged)
	}
	return res, nil
}
