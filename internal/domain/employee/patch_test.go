package employee

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPatchApplyToMergesOnlySetFields(t *testing.T) {
	admissao := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	emp := Employee{
		Matricula:    1000,
		Nome:         "Ana",
		CPF:          11111111111,
		Cargo:        "Analista",
		Salario:      3500,
		Status:       StatusActive,
		DataAdmissao: &admissao,
	}

	cargo := "Coordenadora"
	salario := 5200.75
	patch := Patch{Cargo: &cargo, Salario: &salario}
	patch.ApplyTo(&emp)

	if emp.Cargo != "Coordenadora" || emp.Salario != 5200.75 {
		t.Fatalf("patched fields not applied: %+v", emp)
	}
	if emp.Nome != "Ana" || emp.CPF != 11111111111 || emp.Matricula != 1000 {
		t.Fatalf("untouched fields changed: %+v", emp)
	}
	if emp.DataAdmissao == nil || !emp.DataAdmissao.Equal(admissao) {
		t.Fatalf("data_admissao changed: %v", emp.DataAdmissao)
	}
}

func TestPatchEmpty(t *testing.T) {
	if !(Patch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}
	nome := "Bruno"
	if (Patch{Nome: &nome}).Empty() {
		t.Fatal("patch with a field must not be empty")
	}
}

func TestPatchDecodeLeavesAbsentFieldsNil(t *testing.T) {
	var patch Patch
	if err := json.Unmarshal([]byte(`{"cargo":"Diretor"}`), &patch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if patch.Cargo == nil || *patch.Cargo != "Diretor" {
		t.Fatalf("cargo = %v", patch.Cargo)
	}
	if patch.Nome != nil || patch.Salario != nil {
		t.Fatalf("absent fields must stay nil: %+v", patch)
	}
}

func TestNotePatchEmpty(t *testing.T) {
	if !(NotePatch{}).Empty() {
		t.Fatal("zero note patch must be empty")
	}
	text := "novo texto"
	if (NotePatch{Text: &text}).Empty() {
		t.Fatal("note patch with text must not be empty")
	}
}
