package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrbus/internal/domain/access"
	"hrbus/internal/domain/employee"
)

// Store backs all three ingestion flows with a single pgx pool. Batch
// inserts run inside one transaction via CopyFrom, so a failing commit
// leaves the tables untouched.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) NextMatricula(ctx context.Context) (int64, error) {
	var next int64
	err := s.DB.QueryRow(ctx,
		"SELECT GREATEST(COALESCE(MAX(matricula) + 1, $1), $1) FROM employees",
		int64(employee.FirstMatricula),
	).Scan(&next)
	return next, err
}

func (s *Store) CPFExists(ctx context.Context, cpf int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE cpf = $1", cpf).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) EmployeeExists(ctx context.Context, matricula int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE matricula = $1", matricula).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) AccessExists(ctx context.Context, matricula int64, ts time.Time) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM bus_accesses WHERE employee_matricula = $1 AND ts = $2",
		matricula, ts,
	).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) InsertEmployees(ctx context.Context, employees []employee.Employee) error {
	return s.copyIn(ctx, pgx.Identifier{"employees"},
		[]string{
			"matricula", "nome", "cpf", "identidade", "data_nascimento", "genero",
			"endereco", "tel_principal", "tel_secundario", "email", "cargo", "salario",
			"centro_custo", "setor", "matricula_superior", "nome_superior",
			"data_admissao", "data_demissao", "status",
		},
		pgx.CopyFromSlice(len(employees), func(i int) ([]any, error) {
			emp := employees[i]
			return []any{
				emp.Matricula, emp.Nome, emp.CPF, zeroToNull(emp.Identidade), emp.DataNascimento,
				emptyToNull(emp.Genero), emptyToNull(emp.Endereco), emptyToNull(emp.TelPrincipal),
				emptyToNull(emp.TelSecundario), emptyToNull(emp.Email), emptyToNull(emp.Cargo),
				emp.Salario, emptyToNull(emp.CentroCusto), emptyToNull(emp.Setor),
				zeroToNull(emp.MatriculaSuperior), emptyToNull(emp.NomeSuperior),
				emp.DataAdmissao, emp.DataDemissao, emp.Status,
			}, nil
		}),
	)
}

func (s *Store) InsertNotes(ctx context.Context, notes []employee.Note) error {
	return s.copyIn(ctx, pgx.Identifier{"notes"},
		[]string{"employee_matricula", "text", "category"},
		pgx.CopyFromSlice(len(notes), func(i int) ([]any, error) {
			note := notes[i]
			return []any{note.EmployeeMatricula, note.Text, emptyToNull(note.Category)}, nil
		}),
	)
}

func (s *Store) InsertEvents(ctx context.Context, events []access.Event) error {
	return s.copyIn(ctx, pgx.Identifier{"bus_accesses"},
		[]string{"employee_matricula", "ts", "bus_number"},
		pgx.CopyFromSlice(len(events), func(i int) ([]any, error) {
			event := events[i]
			return []any{event.EmployeeMatricula, event.Timestamp, event.BusNumber}, nil
		}),
	)
}

func (s *Store) copyIn(ctx context.Context, table pgx.Identifier, columns []string, source pgx.CopyFromSource) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.CopyFrom(ctx, table, columns, source); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return tx.Commit(ctx)
}

func emptyToNull(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func zeroToNull(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}
