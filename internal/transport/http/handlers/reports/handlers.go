package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/domain/auth"
	"roster/internal/domain/coverage"
	"roster/internal/domain/reports"
	"roster/internal/transport/http/api"
	"roster/internal/transport/http/middleware"
	"roster/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *reports.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/reports/coverage-log", h.handleCoverageLog)
}

func (h *Handler) handleCoverageLog(w http.ResponseWriter, r *http.Request) {
	filter := coverage.ListFilter{
		StoreID: r.URL.Query().Get("storeId"),
		Status:  r.URL.Query().Get("status"),
	}

	v := shared.NewValidator()
	if raw := r.URL.Query().Get("from"); raw != "" {
		if parsed, ok := v.Date("from", raw); ok {
			filter.From = parsed
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if parsed, ok := v.Date("to", raw); ok {
			filter.To = parsed
		}
	}
	v.DateOrder("from", filter.From, "to", filter.To)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		out, err := h.Service.CoverageLogCSV(r.Context(), filter)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build coverage log", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="coverage-log.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	case "pdf":
		out, err := h.Service.CoverageLogPDF(r.Context(), filter)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build coverage log", middleware.GetRequestID(r.Context()))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="coverage-log.pdf"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	default:
		entries, err := h.Service.CoverageLog(r.Context(), filter)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build coverage log", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, entries, middleware.GetRequestID(r.Context()))
	}
}
