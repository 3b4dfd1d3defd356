package access

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"hrbus/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const rowColumns = `a.employee_matricula, e.nome, a.bus_number, a.ts`

func (s *Store) ByEmployee(ctx context.Context, matricula int64) ([]Row, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+rowColumns+`
    FROM bus_accesses a
    JOIN employees e ON e.matricula = a.employee_matricula
    WHERE a.employee_matricula = $1
    ORDER BY a.ts
  `, matricula)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (s *Store) ByBus(ctx context.Context, busNumber int) ([]Row, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+rowColumns+`
    FROM bus_accesses a
    JOIN employees e ON e.matricula = a.employee_matricula
    WHERE a.bus_number = $1
    ORDER BY a.employee_matricula, a.ts
  `, busNumber)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (s *Store) ByDate(ctx context.Context, day time.Time) ([]Row, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+rowColumns+`
    FROM bus_accesses a
    JOIN employees e ON e.matricula = a.employee_matricula
    WHERE a.ts::date = $1::date
    ORDER BY a.bus_number, a.employee_matricula, a.ts
  `, day)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func (s *Store) All(ctx context.Context) ([]Row, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+rowColumns+`
    FROM bus_accesses a
    JOIN employees e ON e.matricula = a.employee_matricula
    ORDER BY a.ts
  `)
	if err != nil {
		return nil, err
	}
	return collectRows(rows)
}

func collectRows(rows pgx.Rows) ([]Row, error) {
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Matricula, &row.Nome, &row.BusNumber, &row.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
