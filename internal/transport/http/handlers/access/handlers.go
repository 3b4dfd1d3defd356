package accesshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrbus/internal/domain/access"
	"hrbus/internal/transport/http/api"
	"hrbus/internal/transport/http/middleware"
	"hrbus/internal/transport/http/shared"
)

type Handler struct {
	Store access.StoreAPI
}

func NewHandler(store access.StoreAPI) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/access", func(r chi.Router) {
		r.Get("/", h.handleAll)
		r.Get("/by-employee", h.handleByEmployee)
		r.Get("/by-bus", h.handleByBus)
		r.Get("/by-date", h.handleByDate)
	})
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.All(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "access_list_failed", "failed to list access events", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, rows, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleByEmployee(w http.ResponseWriter, r *http.Request) {
	matricula, err := strconv.ParseInt(r.URL.Query().Get("matricula"), 10, 64)
	if err != nil || matricula <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_matricula", "matricula must be a positive number", middleware.GetRequestID(r.Context()))
		return
	}

	rows, err := h.Store.ByEmployee(r.Context(), matricula)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "access_report_failed", "failed to build access report", middleware.GetRequestID(r.Context()))
		return
	}
	if len(rows) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no access events for this matricula", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, access.BuildEmployeeHistory(rows), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleByBus(w http.ResponseWriter, r *http.Request) {
	busNumber, err := strconv.Atoi(r.URL.Query().Get("bus"))
	if err != nil || busNumber <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_bus", "bus must be a positive number", middleware.GetRequestID(r.Context()))
		return
	}

	rows, err := h.Store.ByBus(r.Context(), busNumber)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "access_report_failed", "failed to build access report", middleware.GetRequestID(r.Context()))
		return
	}
	if len(rows) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no access events for this bus", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, access.BuildBusReport(busNumber, rows), middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleByDate(w http.ResponseWriter, r *http.Request) {
	day, err := shared.ParseDate(r.URL.Query().Get("date"))
	if err != nil || day.IsZero() {
		api.Fail(w, http.StatusBadRequest, "invalid_date", "date must be in YYYY-MM-DD format", middleware.GetRequestID(r.Context()))
		return
	}

	rows, err := h.Store.ByDate(r.Context(), day)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "access_report_failed", "failed to build access report", middleware.GetRequestID(r.Context()))
		return
	}
	if len(rows) == 0 {
		api.Fail(w, http.StatusNotFound, "not_found", "no access events on this date", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, access.BuildDailyReport(day, rows), middleware.GetRequestID(r.Context()))
}
