package employee

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("employee not found")
	ErrConflict = errors.New("employee already exists")
)

// FirstMatricula is the registration number assigned when the store is empty.
// Assignment continues from the current maximum afterwards.
const FirstMatricula = 1000

const StatusActive = "A"

// InitialNoteCategory is attached to the note created alongside a new employee.
const InitialNoteCategory = "Cadastro Inicial"

type Employee struct {
	Matricula         int64      `json:"matricula"`
	Nome              string     `json:"nome"`
	CPF               int64      `json:"cpf"`
	Identidade        int64      `json:"identidade"`
	DataNascimento    *time.Time `json:"data_nascimento,omitempty"`
	Genero            string     `json:"genero"`
	Endereco          string     `json:"endereco"`
	TelPrincipal      string     `json:"tel_principal"`
	TelSecundario     string     `json:"tel_secundario,omitempty"`
	Email             string     `json:"email,omitempty"`
	Cargo             string     `json:"cargo"`
	Salario           float64    `json:"salario"`
	CentroCusto       string     `json:"centro_custo"`
	Setor             string     `json:"setor"`
	MatriculaSuperior int64      `json:"matricula_superior"`
	NomeSuperior      string     `json:"nome_superior"`
	DataAdmissao      *time.Time `json:"data_admissao,omitempty"`
	DataDemissao      *time.Time `json:"data_demissao,omitempty"`
	Status            string     `json:"status"`
	LastModification  time.Time  `json:"last_modification_date"`
	Notes             []Note     `json:"notes,omitempty"`
}

type Note struct {
	ID                int64     `json:"id"`
	EmployeeMatricula int64     `json:"employee_matricula"`
	Text              string    `json:"text"`
	Category          string    `json:"category,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type SearchQuery struct {
	Matricula *int64
	Nome      string
	CPF       *int64
}

func (q SearchQuery) Empty() bool {
	return q.Matricula == nil && q.Nome == "" && q.CPF == nil
}
