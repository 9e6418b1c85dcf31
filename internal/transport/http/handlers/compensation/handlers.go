package compensationhandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/domain/auth"
	"roster/internal/domain/compensation"
	"roster/internal/transport/http/api"
	"roster/internal/transport/http/middleware"
	"roster/internal/transport/http/shared"
)

type Handler struct {
	Service *compensation.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *compensation.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/compensation", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCompensationRead, h.Perms)).Get("/extra-hours", h.handleListExtraHours)
		r.With(middleware.RequirePermission(auth.PermCompensationRead, h.Perms)).Get("/vacation-balances", h.handleListVacationBalances)
	})
}

func (h *Handler) handleListExtraHours(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	if !user.Privileged() {
		employeeID = user.EmployeeID
	}

	page := shared.ParsePagination(r, 50, 200)
	grants, err := h.Service.ListExtraHourGrants(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "extra_hours_list_failed", "failed to list extra hour grants", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, grants, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListVacationBalances(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	if !user.Privileged() {
		balance, err := h.Service.GetVacationBalance(r.Context(), user.EmployeeID)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "vacation_balance_failed", "failed to load vacation balance", middleware.GetRequestID(r.Context()))
			return
		}
		api.Success(w, balance, middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 100, 500)
	balances, err := h.Service.ListVacationBalances(r.Context(), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacation_balance_list_failed", "failed to list vacation balances", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, balances, middleware.GetRequestID(r.Context()))
}
