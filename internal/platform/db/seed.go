package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a small development fixture set. It is a no-op when the
// employees table already has rows.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	employees := []struct {
		matricula int64
		nome      string
		cpf       int64
		cargo     string
		setor     string
	}{
		{1000, "Maria da Silva", 11111111111, "Operadora de Producao", "Producao"},
		{1001, "Joao Pereira", 22222222222, "Tecnico de Manutencao", "Manutencao"},
		{1002, "Ana Souza", 33333333333, "Analista de RH", "RH"},
	}

	for _, emp := range employees {
		if _, err := pool.Exec(ctx, `
      INSERT INTO employees (matricula, nome, cpf, cargo, setor, data_admissao, status)
      VALUES ($1, $2, $3, $4, $5, CURRENT_DATE, 'A')
    `, emp.matricula, emp.nome, emp.cpf, emp.cargo, emp.setor); err != nil {
			return err
		}
	}

	if _, err := pool.Exec(ctx, `
    INSERT INTO notes (employee_matricula, text, category)
    VALUES (1000, 'Cadastro criado pelo seed de desenvolvimento.', 'Cadastro Inicial')
  `); err != nil {
		return err
	}

	base := time.Date(time.Now().Year(), time.January, 2, 7, 30, 0, 0, time.UTC)
	accesses := []struct {
		matricula int64
		ts        time.Time
		bus       int
	}{
		{1000, base, 5},
		{1000, base.Add(9 * time.Hour), 5},
		{1001, base.Add(15 * time.Minute), 5},
		{1002, base.Add(45 * time.Minute), 7},
	}
	for _, acc := range accesses {
		if _, err := pool.Exec(ctx, `
      INSERT INTO bus_accesses (employee_matricula, ts, bus_number)
      VALUES ($1, $2, $3)
      ON CONFLICT (employee_matricula, ts) DO NOTHING
    `, acc.matricula, acc.ts, acc.bus); err != nil {
			return err
		}
	}

	return nil
}
