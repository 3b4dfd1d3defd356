package ingest

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"hrbus/internal/domain/access"
)

var accessColumns = []string{"date", "time", "matricula", "bus_number"}

const timestampLayout = "2006-01-02 15:04:05"

// Accesses ingests a bus-access CSV. The header must contain all of date,
// time, matricula and bus_number before any row is processed; header-only
// input is rejected outright. Rows whose (employee, timestamp) pair already
// exists are counted as skipped duplicates, never as errors.
func Accesses(ctx context.Context, store AccessStore, r io.Reader) (Result, error) {
	var res Result

	tbl, err := readTable(r)
	if err != nil {
		return res, err
	}
	if missing := tbl.missingColumns(accessColumns...); len(missing) > 0 {
		return res, &MissingColumnsError{Columns: missing}
	}
	if len(tbl.rows) == 0 {
		return res, ErrNoDataRows
	}

	type eventKey struct {
		matricula int64
		ts        time.Time
	}
	seen := make(map[eventKey]bool)
	var staged []access.Event

	for _, rec := range tbl.rows {
		matricula, err := strconv.ParseInt(rec.fields["matricula"], 10, 64)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid matricula %q", rec.line, rec.fields["matricula"]))
			continue
		}
		busNumber, err := strconv.Atoi(rec.fields["bus_number"])
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid bus_number %q", rec.line, rec.fields["bus_number"]))
			continue
		}
		ts, err := time.Parse(timestampLayout, rec.fields["date"]+" "+rec.fields["time"])
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid date/time %q %q", rec.line, rec.fields["date"], rec.fields["time"]))
			continue
		}

		exists, err := store.EmployeeExists(ctx, matricula)
		if err != nil {
			return res, err
		}
		if !exists {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: employee %d not found", rec.line, matricula))
			continue
		}

		key := eventKey{matricula: matricula, ts: ts}
		if seen[key] {
			res.Skipped++
			continue
		}
		duplicate, err := store.AccessExists(ctx, matricula, ts)
		if err != nil {
			return res, err
		}
		if duplicate {
			res.Skipped++
			continue
		}
		seen[key] = true

		staged = append(staged, access.Event{
			EmployeeMatricula: matricula,
			Timestamp:         ts,
			BusNumber:         busNumber,
		})
	}

	if len(staged) > 0 {
		if err := store.InsertEvents(ctx, staged); err != nil {
			return res, err
		}
		res.Added = len(staged)
	}
	return res, nil
}
