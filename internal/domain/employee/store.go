package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    matricula, nome, cpf,
    COALESCE(identidade, 0),
    data_nascimento,
    COALESCE(genero, ''),
    COALESCE(endereco, ''),
    COALESCE(tel_principal, ''),
    COALESCE(tel_secundario, ''),
    COALESCE(email, ''),
    COALESCE(cargo, ''),
    COALESCE(salario, 0),
    COALESCE(centro_custo, ''),
    COALESCE(setor, ''),
    COALESCE(matricula_superior, 0),
    COALESCE(nome_superior, ''),
    data_admissao, data_demissao, status, last_modification_date`

func scanEmployee(row pgx.Row) (*Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.Matricula, &emp.Nome, &emp.CPF, &emp.Identidade, &emp.DataNascimento,
		&emp.Genero, &emp.Endereco, &emp.TelPrincipal, &emp.TelSecundario, &emp.Email,
		&emp.Cargo, &emp.Salario, &emp.CentroCusto, &emp.Setor,
		&emp.MatriculaSuperior, &emp.NomeSuperior,
		&emp.DataAdmissao, &emp.DataDemissao, &emp.Status, &emp.LastModification,
	)
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// Create allocates the next matricula and inserts the employee, together with
// the optional first note, in one transaction. A concurrent allocation of the
// same number trips the primary key and surfaces as ErrConflict.
func (s *Store) Create(ctx context.Context, emp Employee, firstNoteText string) (*Employee, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx,
		"SELECT GREATEST(COALESCE(MAX(matricula) + 1, $1), $1) FROM employees", int64(FirstMatricula),
	).Scan(&emp.Matricula); err != nil {
		return nil, err
	}

	if emp.Status == "" {
		emp.Status = StatusActive
	}

	_, err = tx.Exec(ctx, `
    INSERT INTO employees (
      matricula, nome, cpf, identidade, data_nascimento, genero, endereco,
      tel_principal, tel_secundario, email, cargo, salario, centro_custo, setor,
      matricula_superior, nome_superior, data_admissao, data_demissao, status
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
  `,
		emp.Matricula, emp.Nome, emp.CPF, zeroToNull(emp.Identidade), emp.DataNascimento,
		emptyToNull(emp.Genero), emptyToNull(emp.Endereco), emptyToNull(emp.TelPrincipal),
		emptyToNull(emp.TelSecundario), emptyToNull(emp.Email), emptyToNull(emp.Cargo),
		emp.Salario, emptyToNull(emp.CentroCusto), emptyToNull(emp.Setor),
		zeroToNull(emp.MatriculaSuperior), emptyToNull(emp.NomeSuperior),
		emp.DataAdmissao, emp.DataDemissao, emp.Status,
	)
	if err != nil {
		return nil, mapConflict(err)
	}

	if firstNoteText != "" {
		var note Note
		if err := tx.QueryRow(ctx, `
      INSERT INTO notes (employee_matricula, text, category)
      VALUES ($1, $2, $3)
      RETURNING id, employee_matricula, text, COALESCE(category, ''), created_at
    `, emp.Matricula, firstNoteText, InitialNoteCategory).Scan(
			&note.ID, &note.EmployeeMatricula, &note.Text, &note.Category, &note.CreatedAt,
		); err != nil {
			return nil, err
		}
		emp.Notes = []Note{note}
	}

	created, err := scanEmployee(tx.QueryRow(ctx,
		"SELECT"+employeeColumns+" FROM employees WHERE matricula = $1", emp.Matricula))
	if err != nil {
		return nil, err
	}
	created.Notes = emp.Notes

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT"+employeeColumns+" FROM employees ORDER BY matricula")
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

// Search matches any of the supplied criteria (OR semantics); nome is a
// case-insensitive substring match.
func (s *Store) Search(ctx context.Context, query SearchQuery) ([]Employee, error) {
	if query.Empty() {
		return nil, nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE ($1::bigint IS NOT NULL AND matricula = $1)
       OR ($2::text <> '' AND nome ILIKE '%' || $2 || '%')
       OR ($3::bigint IS NOT NULL AND cpf = $3)
    ORDER BY matricula
  `, query.Matricula, query.Nome, query.CPF)
	if err != nil {
		return nil, err
	}
	out, err := collectEmployees(rows)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, matricula int64) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx,
		"SELECT"+employeeColumns+" FROM employees WHERE matricula = $1", matricula))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	notes, err := s.notesFor(ctx, matricula)
	if err != nil {
		return nil, err
	}
	emp.Notes = notes
	return emp, nil
}

func (s *Store) Update(ctx context.Context, matricula int64, patch Patch) (*Employee, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	emp, err := scanEmployee(tx.QueryRow(ctx,
		"SELECT"+employeeColumns+" FROM employees WHERE matricula = $1 FOR UPDATE", matricula))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	patch.ApplyTo(emp)

	_, err = tx.Exec(ctx, `
    UPDATE employees
    SET nome = $1, cpf = $2, identidade = $3, data_nascimento = $4, genero = $5,
        endereco = $6, tel_principal = $7, tel_secundario = $8, email = $9,
        cargo = $10, salario = $11, centro_custo = $12, setor = $13,
        matricula_superior = $14, nome_superior = $15, data_admissao = $16,
        data_demissao = $17, status = $18, last_modification_date = now()
    WHERE matricula = $19
  `,
		emp.Nome, emp.CPF, zeroToNull(emp.Identidade), emp.DataNascimento,
		emptyToNull(emp.Genero), emptyToNull(emp.Endereco), emptyToNull(emp.TelPrincipal),
		emptyToNull(emp.TelSecundario), emptyToNull(emp.Email), emptyToNull(emp.Cargo),
		emp.Salario, emptyToNull(emp.CentroCusto), emptyToNull(emp.Setor),
		zeroToNull(emp.MatriculaSuperior), emptyToNull(emp.NomeSuperior),
		emp.DataAdmissao, emp.DataDemissao, emp.Status, matricula,
	)
	if err != nil {
		return nil, mapConflict(err)
	}

	updated, err := scanEmployee(tx.QueryRow(ctx,
		"SELECT"+employeeColumns+" FROM employees WHERE matricula = $1", matricula))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete requires all three identifiers to match before removing the
// employee; notes and access events go with it via FK cascade.
func (s *Store) Delete(ctx context.Context, matricula int64, nome string, cpf int64) (string, error) {
	var deletedNome string
	err := s.DB.QueryRow(ctx, `
    DELETE FROM employees
    WHERE matricula = $1 AND nome ILIKE $2 AND cpf = $3
    RETURNING nome
  `, matricula, nome, cpf).Scan(&deletedNome)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return deletedNome, nil
}

func (s *Store) ByMatriculas(ctx context.Context, matriculas []int64) ([]Employee, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT"+employeeColumns+" FROM employees WHERE matricula = ANY($1) ORDER BY nome", matriculas)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

func (s *Store) AddNote(ctx context.Context, matricula int64, text, category string) (*Note, error) {
	exists, err := s.exists(ctx, matricula)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	var note Note
	err = s.DB.QueryRow(ctx, `
    INSERT INTO notes (employee_matricula, text, category)
    VALUES ($1, $2, $3)
    RETURNING id, employee_matricula, text, COALESCE(category, ''), created_at
  `, matricula, text, emptyToNull(category)).Scan(
		&note.ID, &note.EmployeeMatricula, &note.Text, &note.Category, &note.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Store) UpdateNote(ctx context.Context, matricula, noteID int64, patch NotePatch) (*Note, error) {
	var note Note
	err := s.DB.QueryRow(ctx, `
    UPDATE notes
    SET text = COALESCE($1, text),
        category = COALESCE($2, category)
    WHERE id = $3 AND employee_matricula = $4
    RETURNING id, employee_matricula, text, COALESCE(category, ''), created_at
  `, patch.Text, patch.Category, noteID, matricula).Scan(
		&note.ID, &note.EmployeeMatricula, &note.Text, &note.Category, &note.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (s *Store) notesFor(ctx context.Context, matricula int64) ([]Note, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_matricula, text, COALESCE(category, ''), created_at
    FROM notes
    WHERE employee_matricula = $1
    ORDER BY created_at
  `, matricula)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var note Note
		if err := rows.Scan(&note.ID, &note.EmployeeMatricula, &note.Text, &note.Category, &note.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

func (s *Store) exists(ctx context.Context, matricula int64) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM employees WHERE matricula = $1", matricula).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func collectEmployees(rows pgx.Rows) ([]Employee, error) {
	defer rows.Close()
	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *emp)
	}
	return out, rows.Err()
}

func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
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
