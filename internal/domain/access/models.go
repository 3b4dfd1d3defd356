package access

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("no access records found")

// Event is one badge scan on a bus. Events are immutable once recorded and
// only ever removed by the owning employee's cascade delete.
type Event struct {
	ID                int64     `json:"id"`
	EmployeeMatricula int64     `json:"employee_matricula"`
	Timestamp         time.Time `json:"timestamp"`
	BusNumber         int       `json:"bus_number"`
}

// Row is one fetched event joined with the employee identity, in the order
// the store query produced it. Report builders group rows by adjacency, so
// the fetch ordering must match the grouping key order.
type Row struct {
	Matricula int64     `json:"matricula"`
	Nome      string    `json:"nome"`
	BusNumber int       `json:"bus_number"`
	Timestamp time.Time `json:"timestamp"`
}
