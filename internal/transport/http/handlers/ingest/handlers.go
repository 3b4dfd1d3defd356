package ingesthandler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrbus/internal/domain/ingest"
	"hrbus/internal/transport/http/api"
	"hrbus/internal/transport/http/middleware"
)

// maxUploadMemory bounds the in-memory part of a multipart parse; bigger
// files spill to disk.
const maxUploadMemory = 4 << 20

type Handler struct {
	Employees ingest.EmployeeStore
	Notes     ingest.NoteStore
	Accesses  ingest.AccessStore
}

func NewHandler(employees ingest.EmployeeStore, notes ingest.NoteStore, accesses ingest.AccessStore) *Handler {
	return &Handler{Employees: employees, Notes: notes, Accesses: accesses}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/imports", func(r chi.Router) {
		r.Post("/employees", h.handleEmployees)
		r.Post("/notes", h.handleNotes)
		r.Post("/access", h.handleAccess)
	})
}

func (h *Handler) handleEmployees(w http.ResponseWriter, r *http.Request) {
	body, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer body.Close()

	result, err := ingest.Employees(r.Context(), h.Employees, body)
	if err != nil {
		failIngest(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Added > 0 {
		status = http.StatusCreated
	}
	api.WriteJSON(w, status, api.Envelope{Success: true, Data: result, RequestID: middleware.GetRequestID(r.Context())})
}

func (h *Handler) handleNotes(w http.ResponseWriter, r *http.Request) {
	body, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer body.Close()

	result, err := ingest.Notes(r.Context(), h.Notes, body)
	if err != nil {
		failIngest(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Added > 0 {
		status = http.StatusCreated
	}
	api.WriteJSON(w, status, api.Envelope{Success: true, Data: result, RequestID: middleware.GetRequestID(r.Context())})
}

func (h *Handler) handleAccess(w http.ResponseWriter, r *http.Request) {
	body, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer body.Close()

	result, err := ingest.Accesses(r.Context(), h.Accesses, body)
	if err != nil {
		failIngest(w, r, err)
		return
	}

	// A batch that is entirely duplicates is reported as a conflict so
	// re-uploads of the same export are visible to the caller.
	status := http.StatusOK
	switch {
	case result.Added > 0:
		status = http.StatusCreated
	case result.Skipped > 0 && len(result.Errors) == 0:
		status = http.StatusConflict
	}
	api.WriteJSON(w, status, api.Envelope{Success: status != http.StatusConflict, Data: result, RequestID: middleware.GetRequestID(r.Context())})
}

// openUpload returns the CSV payload, preferring a multipart "file" part and
// falling back to the raw request body.
func openUpload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_upload", "could not parse multipart form", middleware.GetRequestID(r.Context()))
			return nil, false
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "missing_file", "multipart form must contain a file part", middleware.GetRequestID(r.Context()))
			return nil, false
		}
		return file, true
	}
	return r.Body, true
}

func failIngest(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	var missing *ingest.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		api.FailWithDetails(w, http.StatusBadRequest, "missing_columns", "csv header is missing required columns",
			map[string]any{"missing_columns": missing.Columns}, requestID)
	case errors.Is(err, ingest.ErrEmptyInput):
		api.Fail(w, http.StatusBadRequest, "empty_file", "uploaded file is empty", requestID)
	case errors.Is(err, ingest.ErrNoDataRows):
		api.Fail(w, http.StatusBadRequest, "no_data_rows", "uploaded file has a header but no data rows", requestID)
	case errors.Is(err, ingest.ErrConflict):
		api.Fail(w, http.StatusConflict, "batch_conflict", "batch conflicts with existing records, nothing was imported", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "import_failed", "failed to process upload", requestID)
	}
}
