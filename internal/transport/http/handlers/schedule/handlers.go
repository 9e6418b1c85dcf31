package schedulehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/domain/auth"
	"roster/internal/domain/schedule"
	"roster/internal/transport/http/api"
	"roster/internal/transport/http/middleware"
	"roster/internal/transport/http/shared"
)

type Handler struct {
	Service *schedule.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *schedule.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/schedules", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermScheduleWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermScheduleRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermScheduleRead, h.Perms)).Get("/working", h.handleWorking)
		r.With(middleware.RequirePermission(auth.PermScheduleRead, h.Perms)).Get("/{scheduleID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermScheduleWrite, h.Perms)).Post("/{scheduleID}/status", h.handleUpdateStatus)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload schedule.Schedule
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("storeId", payload.StoreID, "store id is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}
	if payload.Status == "" {
		payload.Status = schedule.StatusDraft
	}

	id, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "schedule_create_failed", "failed to create schedule", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 20, 100)
	out, err := h.Service.List(r.Context(), r.URL.Query().Get("storeId"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "schedule_list_failed", "failed to list schedules", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sched, err := h.Service.Get(r.Context(), chi.URLParam(r, "scheduleID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "schedule not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, sched, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Enum("status", payload.Status,
		[]string{schedule.StatusDraft, schedule.StatusPublished, schedule.StatusRejected},
		"status must be draft, published or rejected")
	v.Required("status", payload.Status, "status is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), chi.URLParam(r, "scheduleID"), payload.Status); err != nil {
		api.Fail(w, http.StatusInternalServerError, "schedule_status_failed", "failed to update schedule status", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": payload.Status}, middleware.GetRequestID(r.Context()))
}

// handleWorking reports which employees are already rostered somewhere on a
// given day, the availability input HR consults before inviting candidates.
func (h *Handler) handleWorking(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	date, _ := v.Date("date", r.URL.Query().Get("date"))
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	working, err := h.Service.WorkingEmployeeIDs(r.Context(), r.URL.Query().Get("storeId"), date)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "schedule_working_failed", "failed to resolve working employees", middleware.GetRequestID(r.Context()))
		return
	}

	ids := make([]string, 0, len(working))
	for id := range working {
		ids = append(ids, id)
	}
	api.Success(w, map[string]any{"date": date.Format(schedule.DateLayout), "employeeIds": ids}, middleware.GetRequestID(r.Context()))
}
