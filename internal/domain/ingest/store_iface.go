package ingest

import (
	"context"
	"time"

	"hrbus/internal/domain/access"
	"hrbus/internal/domain/employee"
)

type EmployeeStore interface {
	// NextMatricula returns the number the batch's sequence starts from,
	// recomputed from the current maximum (or the 1000 floor).
	NextMatricula(ctx context.Context) (int64, error)
	CPFExists(ctx context.Context, cpf int64) (bool, error)
	// InsertEmployees persists the staged rows in a single transaction.
	InsertEmployees(ctx context.Context, employees []employee.Employee) error
}

type NoteStore interface {
	EmployeeExists(ctx context.Context, matricula int64) (bool, error)
	InsertNotes(ctx context.Context, notes []employee.Note) error
}

type AccessStore interface {
	EmployeeExists(ctx context.Context, matricula int64) (bool, error)
	AccessExists(ctx context.Context, matricula int64, ts time.Time) (bool, error)
	InsertEvents(ctx context.Context, events []access.Event) error
}
