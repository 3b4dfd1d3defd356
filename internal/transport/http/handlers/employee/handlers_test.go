package employeehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-chi/chi/v5"

	"hrbus/internal/domain/employee"
	"hrbus/internal/transport/http/api"
)

type fakeStore struct {
	employees map[int64]*employee.Employee
}

func (f *fakeStore) Create(ctx context.Context, emp employee.Employee, firstNoteText string) (*employee.Employee, error) {
	return &emp, nil
}

func (f *fakeStore) List(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, *emp)
	}
	return out, nil
}

func (f *fakeStore) Search(ctx context.Context, query employee.SearchQuery) ([]employee.Employee, error) {
	return nil, employee.ErrNotFound
}

func (f *fakeStore) Get(ctx context.Context, matricula int64) (*employee.Employee, error) {
	emp, ok := f.employees[matricula]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return emp, nil
}

func (f *fakeStore) Update(ctx context.Context, matricula int64, patch employee.Patch) (*employee.Employee, error) {
	return nil, employee.ErrNotFound
}

func (f *fakeStore) Delete(ctx context.Context, matricula int64, nome string, cpf int64) (string, error) {
	return "", employee.ErrNotFound
}

func (f *fakeStore) ByMatriculas(ctx context.Context, matriculas []int64) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeStore) AddNote(ctx context.Context, matricula int64, text, category string) (*employee.Note, error) {
	return nil, employee.ErrNotFound
}

func (f *fakeStore) UpdateNote(ctx context.Context, matricula, noteID int64, patch employee.NotePatch) (*employee.Note, error) {
	return nil, employee.ErrNotFound
}

func newTestRouter(store employee.StoreAPI) http.Handler {
	router := chi.NewRouter()
	NewHandler(store, nil).RegisterRoutes(router)
	return router
}

func TestGetEmployeeIncludesNotes(t *testing.T) {
	store := &fakeStore{employees: map[int64]*employee.Employee{
		1000: {
			Matricula: 1000,
			Nome:      "Ana Souza",
			CPF:       11111111111,
			Notes: []employee.Note{
				{ID: 1, EmployeeMatricula: 1000, Text: "Cadastrada", Category: "Cadastro Inicial"},
			},
		},
	}}

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/1000", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var envelope api.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not an envelope: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("data = %T", envelope.Data)
	}
	if data["nome"] != "Ana Souza" {
		t.Fatalf("nome = %v", data["nome"])
	}
	notes, ok := data["notes"].([]any)
	if !ok || len(notes) != 1 {
		t.Fatalf("notes = %v, want one entry", data["notes"])
	}
	note := notes[0].(map[string]any)
	if note["category"] != "Cadastro Inicial" {
		t.Fatalf("note category = %v", note["category"])
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	store := &fakeStore{employees: map[int64]*employee.Employee{}}

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/9999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetEmployeeInvalidMatricula(t *testing.T) {
	store := &fakeStore{employees: map[int64]*employee.Employee{}}

	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees/abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestParseMatriculaList(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    []int64
		wantErr bool
	}{
		{name: "comma separated", in: "1000,1001,1002", want: []int64{1000, 1001, 1002}},
		{name: "semicolon separated", in: "1000;1001", want: []int64{1000, 1001}},
		{name: "mixed separators with spaces", in: " 1000 , 1001 ; 1002 ", want: []int64{1000, 1001, 1002}},
		{name: "duplicates collapsed", in: "1000,1000,1001", want: []int64{1000, 1001}},
		{name: "single value", in: "1000", want: []int64{1000}},
		{name: "empty", in: "", wantErr: true},
		{name: "only separators", in: ",;,", wantErr: true},
		{name: "letters rejected", in: "1000,abc", wantErr: true},
		{name: "negative rejected", in: "-5", wantErr: true},
		{name: "zero rejected", in: "0", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseMatriculaList(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("parseMatriculaList(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMatriculaList(%q) returned error: %v", tc.in, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("parseMatriculaList(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
