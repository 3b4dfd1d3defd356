package employee

import "time"

// Patch enumerates the updatable employee fields. Nil means "leave as is",
// so the set of mutable fields stays statically checkable. Matricula is
// immutable and deliberately absent.
type Patch struct {
	Nome              *string    `json:"nome"`
	CPF               *int64     `json:"cpf"`
	Identidade        *int64     `json:"identidade"`
	DataNascimento    *time.Time `json:"data_nascimento"`
	Genero            *string    `json:"genero"`
	Endereco          *string    `json:"endereco"`
	TelPrincipal      *string    `json:"tel_principal"`
	TelSecundario     *string    `json:"tel_secundario"`
	Email             *string    `json:"email"`
	Cargo             *string    `json:"cargo"`
	Salario           *float64   `json:"salario"`
	CentroCusto       *string    `json:"centro_custo"`
	Setor             *string    `json:"setor"`
	MatriculaSuperior *int64     `json:"matricula_superior"`
	NomeSuperior      *string    `json:"nome_superior"`
	DataAdmissao      *time.Time `json:"data_admissao"`
	DataDemissao      *time.Time `json:"data_demissao"`
	Status            *string    `json:"status"`
}

func (p Patch) Empty() bool {
	return p == Patch{}
}

// ApplyTo merges the supplied fields into emp, field by field.
func (p Patch) ApplyTo(emp *Employee) {
	if p.Nome != nil {
		emp.Nome = *p.Nome
	}
	if p.CPF != nil {
		emp.CPF = *p.CPF
	}
	if p.Identidade != nil {
		emp.Identidade = *p.Identidade
	}
	if p.DataNascimento != nil {
		emp.DataNascimento = p.DataNascimento
	}
	if p.Genero != nil {
		emp.Genero = *p.Genero
	}
	if p.Endereco != nil {
		emp.Endereco = *p.Endereco
	}
	if p.TelPrincipal != nil {
		emp.TelPrincipal = *p.TelPrincipal
	}
	if p.TelSecundario != nil {
		emp.TelSecundario = *p.TelSecundario
	}
	if p.Email != nil {
		emp.Email = *p.Email
	}
	if p.Cargo != nil {
		emp.Cargo = *p.Cargo
	}
	if p.Salario != nil {
		emp.Salario = *p.Salario
	}
	if p.CentroCusto != nil {
		emp.CentroCusto = *p.CentroCusto
	}
	if p.Setor != nil {
		emp.Setor = *p.Setor
	}
	if p.MatriculaSuperior != nil {
		emp.MatriculaSuperior = *p.MatriculaSuperior
	}
	if p.NomeSuperior != nil {
		emp.NomeSuperior = *p.NomeSuperior
	}
	if p.DataAdmissao != nil {
		emp.DataAdmissao = p.DataAdmissao
	}
	if p.DataDemissao != nil {
		emp.DataDemissao = p.DataDemissao
	}
	if p.Status != nil {
		emp.Status = *p.Status
	}
}

// NotePatch covers the two mutable note fields; a note is never re-parented.
type NotePatch struct {
	Text     *string `json:"text"`
	Category *string `json:"category"`
}

func (p NotePatch) Empty() bool {
	return p.Text == nil && p.Category == nil
}
