package coveragehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roster/internal/domain/audit"
	"roster/internal/domain/auth"
	"roster/internal/domain/coverage"
	"roster/internal/transport/http/api"
	"roster/internal/transport/http/middleware"
	"roster/internal/transport/http/shared"
)

type Handler struct {
	Service *coverage.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *coverage.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/coverage", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermCoverageReport, h.Perms)).Post("/requests", h.handleReport)
		r.With(middleware.RequirePermission(auth.PermCoverageRead, h.Perms)).Get("/requests", h.handleList)
		r.With(middleware.RequirePermission(auth.PermCoverageRead, h.Perms)).Get("/requests/{requestID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermCoverageManage, h.Perms)).Get("/requests/{requestID}/candidates", h.handleCandidates)
		r.With(middleware.RequirePermission(auth.PermCoverageManage, h.Perms)).Post("/requests/{requestID}/invite", h.handleInvite)
		r.With(middleware.RequirePermission(auth.PermCoverageRespond, h.Perms)).Post("/requests/{requestID}/accept", h.handleAccept)
		r.With(middleware.RequirePermission(auth.PermCoverageRespond, h.Perms)).Post("/requests/{requestID}/decline", h.handleDecline)
		r.With(middleware.RequirePermission(auth.PermCoverageReport, h.Perms)).Post("/requests/{requestID}/cancel", h.handleCancel)
		r.With(middleware.RequirePermission(auth.PermCoverageFinalize, h.Perms)).Post("/requests/{requestID}/finalize", h.handleFinalize)
	})
}

func failWorkflow(w http.ResponseWriter, err error, requestID string) {
	switch {
	case errors.Is(err, coverage.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "coverage request not found", requestID)
	case errors.Is(err, coverage.ErrDuplicateActiveRequest):
		api.Fail(w, http.StatusConflict, "duplicate_request", "an active request already exists for this shift", requestID)
	case errors.Is(err, coverage.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "request is not in a valid state for this operation", requestID)
	case errors.Is(err, coverage.ErrOfferTaken):
		api.Fail(w, http.StatusConflict, "offer_taken", "the offer was already accepted by another employee", requestID)
	case errors.Is(err, coverage.ErrOfferUnavailable):
		api.Fail(w, http.StatusGone, "offer_unavailable", "the offer is no longer available", requestID)
	case errors.Is(err, coverage.ErrUnauthorized):
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed to perform this coverage operation", requestID)
	case errors.Is(err, coverage.ErrInvalidCompensation):
		api.Fail(w, http.StatusBadRequest, "invalid_compensation", "compensation type must be extra_hour or vacation_day", requestID)
	default:
		api.Fail(w, http.StatusInternalServerError, "coverage_failed", "coverage operation failed", requestID)
	}
}

func (h *Handler) audit(r *http.Request, user auth.UserContext, action, entityID string, after any) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.Record(r.Context(), user.UserID, action, "coverage_request", entityID,
		middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}

type reportPayload struct {
	ScheduleID   string   `json:"scheduleId"`
	Date         string   `json:"date"`
	ShiftName    string   `json:"shiftName"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	StoreID      string   `json:"storeId"`
	DepartmentID string   `json:"departmentId"`
	Reason       string   `json:"reason"`
	Attachments  []string `json:"attachments"`
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload reportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("scheduleId", payload.ScheduleID, "schedule id is required")
	v.Required("startTime", payload.StartTime, "shift start time is required")
	v.Required("endTime", payload.EndTime, "shift end time is required")
	dayDate, _ := v.Date("date", payload.Date)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	req, err := h.Service.Report(r.Context(), coverage.ShiftRef{
		ScheduleID:   payload.ScheduleID,
		DayDate:      dayDate,
		ShiftName:    payload.ShiftName,
		StartTime:    payload.StartTime,
		EndTime:      payload.EndTime,
		StoreID:      payload.StoreID,
		DepartmentID: payload.DepartmentID,
	}, user.EmployeeID, payload.Reason, payload.Attachments)
	if err != nil {
		failWorkflow(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.audit(r, user, "coverage.report", req.ID, req)
	api.Created(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 50, 200)
	filter := coverage.ListFilter{
		StoreID: r.URL.Query().Get("storeId"),
		Status:  r.URL.Query().Get("status"),
	}

	requests, total, err := h.Service.List(r.Context(), filter, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "coverage_list_failed", "failed to list coverage requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"items": requests, "total": total}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	req, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		failWorkflow(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCandidates(w http.ResponseWriter, r *http.Request) {
	pool, err := h.Service.EligibleCandidates(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		failWorkflow(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, pool, middleware.GetRequestID(r.Context()))
}

type invitePayload struct {
	CandidateIDs []string `json:"candidateIds"`
	Message      string   `json:"message"`
}

func (h *Handler) handleInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload invitePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if len(payload.CandidateIDs) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "at least one candidate is required", middleware.GetRequestID(r.Context()))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Invite(r.Context(), requestID, payload.CandidateIDs, payload.Message, user)
	if err != nil {
		failWorkflow(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.audit(r, user, "coverage.invite", requestID, payload)
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAccept(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Accept(r.Context(), requestID, user)
	if err != nil {
		failWorkflow(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.audit(r, user, "coverage.accept", requestID, map[string]string{"acceptedBy": req.AcceptedBy})
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDecline(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if err := h.Service.Decline(r.Context(), requestID, user); err != nil {
		failWorkflow(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.audit(r, user, "coverage.decline", requestID, map[string]string{"employeeId": user.EmployeeID})
	api.Success(w, map[string]string{"status": "declined"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if err := h.Service.Cancel(r.Context(), requestID, user); err != nil {
		failWorkflow(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.audit(r, user, "coverage.cancel", requestID, map[string]string{"status": coverage.StatusCancelled})
	api.Success(w, map[string]string{"status": coverage.StatusCancelled}, middleware.GetRequestID(r.Context()))
}

type finalizePayload struct {
	Compensation coverage.CompensationInput `json:"compensation"`
	Absence      coverage.AbsenceInput      `json:"absence"`
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload finalizePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	requestID := chi.URLParam(r, "requestID")
	req, err := h.Service.Finalize(r.Context(), requestID, payload.Compensation, payload.Absence, user)
	if err != nil {
		failWorkflow(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	h.audit(r, user, "coverage.finalize", requestID, req)
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}
