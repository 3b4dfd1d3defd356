package ingest

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"hrbus/internal/domain/employee"
)

const dateLayout = "2006-01-02"

// Employees ingests an employee CSV. Rows are matched against existing
// records by CPF; duplicates are counted and skipped. Registration numbers
// continue from the pre-scan maximum and advance only for staged rows, so
// skipped duplicates leave no gaps in the sequence. All staged rows are
// committed as one batch at the end of the scan.
func Employees(ctx context.Context, store EmployeeStore, r io.Reader) (Result, error) {
	var res Result

	tbl, err := readTable(r)
	if err != nil {
		return res, err
	}

	next, err := store.NextMatricula(ctx)
	if err != nil {
		return res, err
	}

	seen := make(map[int64]bool)
	var staged []employee.Employee
	for _, rec := range tbl.rows {
		emp, rowErr := parseEmployeeRow(rec)
		if rowErr != "" {
			res.Errors = append(res.Errors, rowErr)
			continue
		}

		if seen[emp.CPF] {
			res.Skipped++
			continue
		}
		exists, err := store.CPFExists(ctx, emp.CPF)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}
		seen[emp.CPF] = true

		emp.Matricula = next
		next++
		staged = append(staged, *emp)
	}

	if len(staged) > 0 {
		if err := store.InsertEmployees(ctx, staged); err != nil {
			return res, err
		}
		res.Added = len(staged)
	}
	return res, nil
}

func parseEmployeeRow(rec record) (*employee.Employee, string) {
	f := rec.fields
	if f["cpf"] == "" || f["nome"] == "" {
		return nil, fmt.Sprintf("line %d: missing 'cpf' or 'nome'", rec.line)
	}

	cpf, err := strconv.ParseInt(f["cpf"], 10, 64)
	if err != nil {
		return nil, fmt.Sprintf("line %d: invalid cpf %q", rec.line, f["cpf"])
	}
	identidade, err := strconv.ParseInt(f["identidade"], 10, 64)
	if err != nil {
		return nil, fmt.Sprintf("line %d: invalid identidade %q", rec.line, f["identidade"])
	}
	salario, err := strconv.ParseFloat(f["salario"], 64)
	if err != nil {
		return nil, fmt.Sprintf("line %d: invalid salario %q", rec.line, f["salario"])
	}
	matriculaSuperior, err := strconv.ParseInt(f["matricula_superior"], 10, 64)
	if err != nil {
		return nil, fmt.Sprintf("line %d: invalid matricula_superior %q", rec.line, f["matricula_superior"])
	}
	nascimento, err := time.Parse(dateLayout, f["data_nascimento"])
	if err != nil {
		return nil, fmt.Sprintf("line %d: invalid data_nascimento %q", rec.line, f["data_nascimento"])
	}
	admissao, err := time.Parse(dateLayout, f["data_admissao"])
	if err != nil {
		return nil, fmt.Sprintf("line %d: invalid data_admissao %q", rec.line, f["data_admissao"])
	}

	var demissao *time.Time
	if f["data_demissao"] != "" {
		parsed, err := time.Parse(dateLayout, f["data_demissao"])
		if err != nil {
			return nil, fmt.Sprintf("line %d: invalid data_demissao %q", rec.line, f["data_demissao"])
		}
		demissao = &parsed
	}

	status := f["status"]
	if status == "" {
		status = employee.StatusActive
	}

	return &employee.Employee{
		Nome:              f["nome"],
		CPF:               cpf,
		Identidade:        identidade,
		DataNascimento:    &nascimento,
		Genero:            f["genero"],
		Endereco:          f["endereco"],
		TelPrincipal:      f["tel_principal"],
		TelSecundario:     f["tel_secundario"],
		Email:             f["email"],
		Cargo:             f["cargo"],
		Salario:           salario,
		CentroCusto:       f["centro_custo"],
		Setor:             f["setor"],
		MatriculaSuperior: matriculaSuperior,
		NomeSuperior:      f["nome_superior"],
		DataAdmissao:      &admissao,
		DataDemissao:      demissao,
		Status:            status,
	}, ""
}
