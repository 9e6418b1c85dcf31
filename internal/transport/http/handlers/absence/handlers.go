package absencehandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/domain/absence"
	"roster/internal/domain/auth"
	"roster/internal/transport/http/api"
	"roster/internal/transport/http/middleware"
	"roster/internal/transport/http/shared"
)

type Handler struct {
	Store *absence.Store
	Perms middleware.PermissionStore
}

func NewHandler(store *absence.Store, perms middleware.PermissionStore) *Handler {
	return &Handler{Store: store, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermAbsenceRead, h.Perms)).Get("/absences", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	// Non-privileged callers only see their own absence record trail.
	employeeID := r.URL.Query().Get("employeeId")
	if !user.Privileged() {
		employeeID = user.EmployeeID
	}

	page := shared.ParsePagination(r, 50, 200)
	records, err := h.Store.List(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "absence_list_failed", "failed to list absence records", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}
