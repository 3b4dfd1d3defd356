package employeehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrbus/internal/domain/contract"
	"hrbus/internal/domain/employee"
	"hrbus/internal/domain/labels"
	"hrbus/internal/transport/http/api"
	"hrbus/internal/transport/http/middleware"
	"hrbus/internal/transport/http/shared"
)

type Handler struct {
	Store    employee.StoreAPI
	Contract *contract.Client
}

func NewHandler(store employee.StoreAPI, contractClient *contract.Client) *Handler {
	return &Handler{Store: store, Contract: contractClient}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/search", h.handleSearch)
		r.Post("/labels", h.handleLabels)
		r.Get("/labels/all", h.handleLabelsAll)
		r.Post("/contract", h.handleContract)
		r.Route("/{matricula}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Patch("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Post("/notes", h.handleAddNote)
			r.Put("/notes/{noteID}", h.handleUpdateNote)
		})
	})
}

type createPayload struct {
	employee.Employee
	DataNascimento string `json:"data_nascimento"`
	DataAdmissao   string `json:"data_admissao"`
	DataDemissao   string `json:"data_demissao"`
	FirstNoteText  string `json:"first_note_text"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("nome", payload.Nome, "nome is required")
	if payload.CPF == 0 {
		v.Add("cpf", "cpf is required")
	}
	v.Enum("status", payload.Status, []string{"A", "I"}, "status must be A or I")

	emp := payload.Employee
	if payload.DataNascimento != "" {
		if parsed, ok := v.Date("data_nascimento", payload.DataNascimento); ok {
			emp.DataNascimento = &parsed
		}
	}
	if payload.DataAdmissao != "" {
		if parsed, ok := v.Date("data_admissao", payload.DataAdmissao); ok {
			emp.DataAdmissao = &parsed
		}
	}
	if payload.DataDemissao != "" {
		if parsed, ok := v.Date("data_demissao", payload.DataDemissao); ok {
			emp.DataDemissao = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if emp.Status == "" {
		emp.Status = employee.StatusActive
	}

	created, err := h.Store.Create(r.Context(), emp, payload.FirstNoteText)
	if err != nil {
		if errors.Is(err, employee.ErrConflict) {
			api.Fail(w, http.StatusConflict, "employee_exists", "employee with this cpf or matricula already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := employee.SearchQuery{Nome: strings.TrimSpace(r.URL.Query().Get("nome"))}
	if raw := r.URL.Query().Get("matricula"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_matricula", "matricula must be numeric", middleware.GetRequestID(r.Context()))
			return
		}
		query.Matricula = &parsed
	}
	if raw := r.URL.Query().Get("cpf"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_cpf", "cpf must be numeric", middleware.GetRequestID(r.Context()))
			return
		}
		query.CPF = &parsed
	}
	if query.Empty() {
		api.Fail(w, http.StatusBadRequest, "missing_criteria", "provide at least one of matricula, nome or cpf", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Store.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "no employee matches the given criteria", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_search_failed", "failed to search employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

// handleGet returns one employee with the full note history embedded.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	matricula, ok := parseMatricula(w, r)
	if !ok {
		return
	}

	emp, err := h.Store.Get(r.Context(), matricula)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

type updatePayload struct {
	employee.Patch
	DataNascimento *string `json:"data_nascimento"`
	DataAdmissao   *string `json:"data_admissao"`
	DataDemissao   *string `json:"data_demissao"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	matricula, ok := parseMatricula(w, r)
	if !ok {
		return
	}

	var payload updatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	patch := payload.Patch
	if payload.DataNascimento != nil {
		if parsed, ok := v.Date("data_nascimento", *payload.DataNascimento); ok {
			patch.DataNascimento = &parsed
		}
	}
	if payload.DataAdmissao != nil {
		if parsed, ok := v.Date("data_admissao", *payload.DataAdmissao); ok {
			patch.DataAdmissao = &parsed
		}
	}
	if payload.DataDemissao != nil {
		if parsed, ok := v.Date("data_demissao", *payload.DataDemissao); ok {
			patch.DataDemissao = &parsed
		}
	}
	if patch.Status != nil {
		v.Enum("status", *patch.Status, []string{"A", "I"}, "status must be A or I")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if patch.Empty() {
		api.Fail(w, http.StatusBadRequest, "empty_patch", "no updatable fields in payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Store.Update(r.Context(), matricula, patch)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

type deletePayload struct {
	Nome string `json:"nome"`
	CPF  int64  `json:"cpf"`
}

// handleDelete demands nome and cpf alongside the matricula before anything
// is removed. They arrive as query parameters, or as a JSON body for clients
// that cannot attach a query string.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	matricula, ok := parseMatricula(w, r)
	if !ok {
		return
	}

	payload := deletePayload{Nome: strings.TrimSpace(r.URL.Query().Get("nome"))}
	if raw := r.URL.Query().Get("cpf"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_cpf", "cpf must be numeric", middleware.GetRequestID(r.Context()))
			return
		}
		payload.CPF = parsed
	}
	if payload.Nome == "" && payload.CPF == 0 && r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	v := shared.NewValidator()
	v.Required("nome", payload.Nome, "nome is required to confirm deletion")
	if payload.CPF == 0 {
		v.Add("cpf", "cpf is required to confirm deletion")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	nome, err := h.Store.Delete(r.Context(), matricula, payload.Nome, payload.CPF)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "no employee matches matricula, nome and cpf", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"matricula": matricula, "nome": nome, "deleted": true}, middleware.GetRequestID(r.Context()))
}

type notePayload struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func (h *Handler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	matricula, ok := parseMatricula(w, r)
	if !ok {
		return
	}

	var payload notePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if strings.TrimSpace(payload.Text) == "" {
		api.Fail(w, http.StatusBadRequest, "missing_text", "note text is required", middleware.GetRequestID(r.Context()))
		return
	}

	note, err := h.Store.AddNote(r.Context(), matricula, payload.Text, payload.Category)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "note_create_failed", "failed to add note", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, note, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	matricula, ok := parseMatricula(w, r)
	if !ok {
		return
	}
	noteID, err := strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_note_id", "note id must be numeric", middleware.GetRequestID(r.Context()))
		return
	}

	var patch employee.NotePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if patch.Empty() {
		api.Fail(w, http.StatusBadRequest, "empty_patch", "no updatable fields in payload", middleware.GetRequestID(r.Context()))
		return
	}

	note, err := h.Store.UpdateNote(r.Context(), matricula, noteID, patch)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "note not found for employee", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "note_update_failed", "failed to update note", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, note, middleware.GetRequestID(r.Context()))
}

type labelsPayload struct {
	Matriculas string `json:"matriculas"`
}

func (h *Handler) handleLabels(w http.ResponseWriter, r *http.Request) {
	var payload labelsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	matriculas, err := parseMatriculaList(payload.Matriculas)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_matriculas", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Store.ByMatriculas(r.Context(), matriculas)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "label_lookup_failed", "failed to load employees", middleware.GetRequestID(r.Context()))
		return
	}
	if len(employees) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no employees match the given matriculas", middleware.GetRequestID(r.Context()))
		return
	}

	found := make(map[int64]bool, len(employees))
	for _, emp := range employees {
		found[emp.Matricula] = true
	}
	missing := make([]string, 0)
	for _, m := range matriculas {
		if !found[m] {
			missing = append(missing, strconv.FormatInt(m, 10))
		}
	}

	if len(missing) > 0 {
		w.Header().Set("X-Not-Found-Matriculas", strings.Join(missing, ","))
	}
	h.writeLabelsPDF(w, r, employees)
}

func (h *Handler) handleLabelsAll(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "label_lookup_failed", "failed to load employees", middleware.GetRequestID(r.Context()))
		return
	}
	if len(employees) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no employees registered", middleware.GetRequestID(r.Context()))
		return
	}
	sort.Slice(employees, func(i, j int) bool { return employees[i].Nome < employees[j].Nome })
	h.writeLabelsPDF(w, r, employees)
}

func (h *Handler) writeLabelsPDF(w http.ResponseWriter, r *http.Request, employees []employee.Employee) {
	entries := make([]labels.Entry, 0, len(employees))
	for _, emp := range employees {
		entries = append(entries, labels.Entry{Matricula: emp.Matricula, Nome: emp.Nome})
	}

	pdf, err := labels.Generate(entries)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "label_render_failed", "failed to render labels", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="etiquetas.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		return
	}
}

func (h *Handler) handleContract(w http.ResponseWriter, r *http.Request) {
	var payload contract.Request
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("contractNomeCompleto", payload.NomeCompleto, "employee name is required")
	v.Required("contractCPF", payload.CPF, "employee cpf is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	url, err := h.Contract.CreatePDF(r.Context(), payload.Payload())
	if err != nil {
		var apiErr *contract.APIError
		var transportErr *contract.TransportError
		switch {
		case errors.Is(err, contract.ErrNotConfigured):
			api.Fail(w, http.StatusInternalServerError, "contract_not_configured", "contract service is not configured", middleware.GetRequestID(r.Context()))
		case errors.As(err, &apiErr):
			api.Fail(w, http.StatusBadGateway, "contract_rejected", apiErr.Detail, middleware.GetRequestID(r.Context()))
		case errors.As(err, &transportErr):
			api.Fail(w, http.StatusGatewayTimeout, "contract_unreachable", "contract service did not respond", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusInternalServerError, "contract_failed", "failed to generate contract", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, map[string]string{"download_url": url}, middleware.GetRequestID(r.Context()))
}

func parseMatricula(w http.ResponseWriter, r *http.Request) (int64, bool) {
	matricula, err := strconv.ParseInt(chi.URLParam(r, "matricula"), 10, 64)
	if err != nil || matricula <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_matricula", "matricula must be a positive number", middleware.GetRequestID(r.Context()))
		return 0, false
	}
	return matricula, true
}

// parseMatriculaList accepts a comma or semicolon separated list of numeric
// matriculas, e.g. "1000,1001;1002". Anything else is rejected outright.
func parseMatriculaList(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("matriculas is required")
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	if len(parts) == 0 {
		return nil, errors.New("matriculas is required")
	}
	out := make([]int64, 0, len(parts))
	seen := make(map[int64]bool, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseInt(part, 10, 64)
		if err != nil || value <= 0 {
			return nil, errors.New("matriculas must contain only positive numbers separated by comma or semicolon")
		}
		if seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil, errors.New("matriculas is required")
	}
	return out, nil
}
