package ingest

import (
	"context"
	"fmt"
	"time"

	"hrbus/internal/domain/access"
	"hrbus/internal/domain/employee"
)

type fakeStore struct {
	maxMatricula int64
	cpfs         map[int64]bool
	employees    map[int64]bool
	accesses     map[string]bool

	insertedEmployees []employee.Employee
	insertedNotes     []employee.Note
	insertedEvents    []access.Event

	insertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cpfs:      make(map[int64]bool),
		employees: make(map[int64]bool),
		accesses:  make(map[string]bool),
	}
}

func (f *fakeStore) NextMatricula(ctx context.Context) (int64, error) {
	if f.maxMatricula < employee.FirstMatricula {
		return employee.FirstMatricula, nil
	}
	return f.maxMatricula + 1, nil
}

func (f *fakeStore) CPFExists(ctx context.Context, cpf int64) (bool, error) {
	return f.cpfs[cpf], nil
}

func (f *fakeStore) EmployeeExists(ctx context.Context, matricula int64) (bool, error) {
	return f.employees[matricula], nil
}

func (f *fakeStore) AccessExists(ctx context.Context, matricula int64, ts time.Time) (bool, error) {
	return f.accesses[accessKey(matricula, ts)], nil
}

func (f *fakeStore) InsertEmployees(ctx context.Context, employees []employee.Employee) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedEmployees = append(f.insertedEmployees, employees...)
	return nil
}

func (f *fakeStore) InsertNotes(ctx context.Context, notes []employee.Note) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedNotes = append(f.insertedNotes, notes...)
	return nil
}

func (f *fakeStore) InsertEvents(ctx context.Context, events []access.Event) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedEvents = append(f.insertedEvents, events...)
	return nil
}

func accessKey(matricula int64, ts time.Time) string {
	return fmt.Sprintf("%d|%s", matricula, ts.Format("2006-01-02 15:04:05"))
}
