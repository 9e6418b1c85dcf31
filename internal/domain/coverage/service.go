package coverage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roster/internal/domain/absence"
	"roster/internal/domain/auth"
	"roster/internal/domain/notifications"
	"roster/internal/domain/org"
	"roster/internal/domain/schedule"
)

// Directory is the slice of the org store the workflow needs.
type Directory interface {
	ListActiveEmployees(ctx context.Context) ([]org.Employee, error)
	GlobalDepartmentHeads(ctx context.Context, globalDepartmentID string) (map[string]struct{}, error)
	DepartmentGlobalIndex(ctx context.Context) (map[string]string, error)
	UserIDsForEmployees(ctx context.Context, employeeIDs []string) ([]string, error)
	PrivilegedUserIDs(ctx context.Context, roles []string) ([]string, error)
}

type ScheduleGateway interface {
	WorkingEmployeeIDs(ctx context.Context, storeID string, date time.Time) (map[string]struct{}, error)
	ApplyCoverage(ctx context.Context, scheduleID string, m schedule.CoverageMutation) (bool, error)
}

type AbsenceRecorder interface {
	Create(ctx context.Context, rec absence.Record) (string, error)
}

type Compensator interface {
	GrantExtraHours(ctx context.Context, employeeID string, hours float64, sourceRef string) (string, error)
	CreditVacationDays(ctx context.Context, employeeID string, days float64) error
}

type Notifier interface {
	Notify(ctx context.Context, userIDs []string, ntype, title, body, link string)
}

type Publisher interface {
	Publish(channel, event string, payload any)
}

type AcceptMetrics interface {
	RecordAcceptOutcome(won bool)
}

// Runner defers best-effort side effects off the request path. Nil means run
// inline.
type Runner interface {
	Enqueue(jobType, targetID string, run func(context.Context) (any, error))
}

type Service struct {
	Store        StoreAPI
	Directory    Directory
	Schedules    ScheduleGateway
	Absences     AbsenceRecorder
	Compensation Compensator
	Notifier     Notifier
	Publisher    Publisher
	Metrics      AcceptMetrics
	Jobs         Runner

	// Now is swappable for tests.
	Now func() time.Time
}

func NewService(store StoreAPI, dir Directory, schedules ScheduleGateway, absences AbsenceRecorder, comp Compensator, notifier Notifier, pub Publisher) *Service {
	return &Service{
		Store:        store,
		Directory:    dir,
		Schedules:    schedules,
		Absences:     absences,
		Compensation: comp,
		Notifier:     notifier,
		Publisher:    pub,
		Now:          time.Now,
	}
}

const jobNotifyFanout = "notify_fanout"

// Report opens a coverage request for a shift the employee cannot work. At
// most one non-cancelled request may exist per shift occurrence.
func (s *Service) Report(ctx context.Context, shift ShiftRef, employeeID, reason string, attachments []string) (*CoverageRequest, error) {
	if shift.ScheduleID == "" || shift.StartTime == "" || shift.EndTime == "" || shift.DayDate.IsZero() {
		return nil, fmt.Errorf("shift reference is incomplete")
	}
	if employeeID == "" {
		return nil, fmt.Errorf("reporting employee is required")
	}

	exists, err := s.Store.ActiveRequestExists(ctx, shift)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateActiveRequest
	}

	req := &CoverageRequest{
		OriginalShift:      shift,
		OriginalEmployeeID: employeeID,
		Reason:             reason,
		Attachments:        attachments,
		Status:             StatusPendingHR,
		Candidates:         []string{},
	}
	id, err := s.Store.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	created, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.sideEffect(ctx, id, func(ctx context.Context) {
		userIDs, err := s.Directory.PrivilegedUserIDs(ctx, auth.PrivilegedRoles())
		if err != nil {
			slog.Warn("failed to resolve HR users for coverage report", "requestId", id, "error", err)
			return
		}
		s.Notifier.Notify(ctx, userIDs, notifications.TypeCoverageReported,
			"Shift coverage needed",
			fmt.Sprintf("A shift on %s was reported as needing coverage.", shift.DayDate.Format(schedule.DateLayout)),
			"/coverage/"+id)
	})
	s.publish(id, "request.reported", created)

	return created, nil
}

// Invite adds candidates to the offer and moves the request to seeking
// coverage. Re-inviting an existing candidate is a no-op for that candidate.
func (s *Service) Invite(ctx context.Context, requestID string, candidateIDs []string, message string, actor auth.UserContext) (*CoverageRequest, error) {
	if !actor.Privileged() {
		return nil, ErrUnauthorized
	}

	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPendingHR && req.Status != StatusSeekingCoverage {
		return nil, ErrInvalidState
	}

	fresh := make([]string, 0, len(candidateIDs))
	seen := map[string]struct{}{}
	for _, id := range candidateIDs {
		if id == "" || id == req.OriginalEmployeeID || req.HasCandidate(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		fresh = append(fresh, id)
	}
	if len(fresh) == 0 && req.Status == StatusSeekingCoverage {
		return req, nil
	}

	if err := s.Store.AddCandidates(ctx, requestID, fresh, message, s.Now()); err != nil {
		return nil, err
	}
	updated, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.sideEffect(ctx, requestID, func(ctx context.Context) {
		userIDs, err := s.Directory.UserIDsForEmployees(ctx, fresh)
		if err != nil {
			slog.Warn("failed to resolve candidate users for coverage offer", "requestId", requestID, "error", err)
			return
		}
		s.Notifier.Notify(ctx, userIDs, notifications.TypeCoverageOffer,
			"Shift coverage offer",
			offerBody(updated, message),
			"/coverage/"+requestID)
	})
	s.publish(requestID, "offer.sent", updated)

	return updated, nil
}

func offerBody(req *CoverageRequest, message string) string {
	body := fmt.Sprintf("You have been offered a shift on %s from %s to %s.",
		req.OriginalShift.DayDate.Format(schedule.DateLayout),
		req.OriginalShift.StartTime, req.OriginalShift.EndTime)
	if message != "" {
		body += " " + message
	}
	return body
}

// Decline removes the employee from the candidate pool. Declining does not
// stall the request; the remaining candidates keep their offer.
func (s *Service) Decline(ctx context.Context, requestID string, actor auth.UserContext) error {
	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != StatusSeekingCoverage {
		return ErrOfferUnavailable
	}
	if !req.HasCandidate(actor.EmployeeID) {
		return nil
	}
	if err := s.Store.RemoveCandidate(ctx, requestID, actor.EmployeeID); err != nil {
		return err
	}
	s.publish(requestID, "candidate.declined", map[string]string{"employeeId": actor.EmployeeID})
	return nil
}

// Accept claims the offer for the calling employee. Exactly one concurrent
// acceptor wins; the rest observe ErrOfferTaken. Accepting a request you
// already won is idempotent.
func (s *Service) Accept(ctx context.Context, requestID string, actor auth.UserContext) (*CoverageRequest, error) {
	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.AcceptedBy == actor.EmployeeID && req.AcceptedBy != "" {
		return req, nil
	}
	if req.Status != StatusSeekingCoverage {
		return nil, takenOrUnavailable(req)
	}
	if !req.HasCandidate(actor.EmployeeID) && !actor.Privileged() {
		return nil, ErrUnauthorized
	}

	won, err := s.Store.TryAccept(ctx, requestID, actor.EmployeeID, s.Now())
	if err != nil {
		return nil, err
	}
	if s.Metrics != nil {
		s.Metrics.RecordAcceptOutcome(won)
	}

	updated, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !won {
		if updated.AcceptedBy == actor.EmployeeID {
			return updated, nil
		}
		return nil, takenOrUnavailable(updated)
	}

	s.sideEffect(ctx, requestID, func(ctx context.Context) {
		losers := make([]string, 0, len(updated.Candidates))
		for _, id := range updated.Candidates {
			if id != actor.EmployeeID {
				losers = append(losers, id)
			}
		}
		userIDs, err := s.Directory.UserIDsForEmployees(ctx, losers)
		if err != nil {
			slog.Warn("failed to resolve users for offer-taken notice", "requestId", requestID, "error", err)
			return
		}
		s.Notifier.Notify(ctx, userIDs, notifications.TypeCoverageTaken,
			"Shift coverage offer taken",
			"The shift you were offered has been claimed by another employee.",
			"/coverage/"+requestID)

		hrIDs, err := s.Directory.PrivilegedUserIDs(ctx, auth.PrivilegedRoles())
		if err != nil {
			slog.Warn("failed to resolve HR users for acceptance notice", "requestId", requestID, "error", err)
			return
		}
		s.Notifier.Notify(ctx, hrIDs, notifications.TypeCoverageAccepted,
			"Shift coverage accepted",
			"A coverage offer has been accepted and is awaiting finalization.",
			"/coverage/"+requestID)
	})
	s.publish(requestID, "offer.taken", updated)

	return updated, nil
}

func takenOrUnavailable(req *CoverageRequest) error {
	if req.AcceptedBy != "" {
		return ErrOfferTaken
	}
	return ErrOfferUnavailable
}

// Cancel aborts a request that has not been accepted yet. The reporter may
// cancel their own request; privileged users may cancel any.
func (s *Service) Cancel(ctx context.Context, requestID string, actor auth.UserContext) error {
	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if !actor.Privileged() && actor.EmployeeID != req.OriginalEmployeeID {
		return ErrUnauthorized
	}
	if req.Status != StatusPendingHR && req.Status != StatusSeekingCoverage {
		return ErrInvalidState
	}
	if err := s.Store.UpdateStatus(ctx, requestID, StatusCancelled); err != nil {
		return err
	}

	s.sideEffect(ctx, requestID, func(ctx context.Context) {
		userIDs, err := s.Directory.UserIDsForEmployees(ctx, req.Candidates)
		if err != nil {
			slog.Warn("failed to resolve users for cancellation notice", "requestId", requestID, "error", err)
			return
		}
		s.Notifier.Notify(ctx, userIDs, notifications.TypeCoverageCancelled,
			"Shift coverage cancelled",
			"A shift coverage offer you were invited to has been withdrawn.",
			"/coverage/"+requestID)
	})
	s.publish(requestID, "request.cancelled", map[string]string{"status": StatusCancelled})

	return nil
}

// Finalize closes an accepted request: the status flips to covered under a
// guard, then the schedule mutation, absence record and compensation are
// applied. Those follow-up writes are best effort; a failure is logged and
// does not undo the finalization.
func (s *Service) Finalize(ctx context.Context, requestID string, comp CompensationInput, abs AbsenceInput, actor auth.UserContext) (*CoverageRequest, error) {
	if !actor.Privileged() {
		return nil, ErrUnauthorized
	}
	if comp.Type != CompensationExtraHour && comp.Type != CompensationVacationDay {
		return nil, ErrInvalidCompensation
	}

	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusAwaitingFinalization || req.AcceptedBy == "" {
		return nil, ErrInvalidState
	}

	amount, err := s.compensationAmount(req, comp)
	if err != nil {
		return nil, err
	}

	done, err := s.Store.MarkCovered(ctx, requestID, comp.Type)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, ErrInvalidState
	}

	if abs.Type == "" {
		abs.Type = AbsenceTypeCovered
	}
	if abs.JustificationStatus == "" {
		abs.JustificationStatus = absence.JustificationPending
	}
	dayDate := req.OriginalShift.DayDate

	applied, err := s.Schedules.ApplyCoverage(ctx, req.OriginalShift.ScheduleID, schedule.CoverageMutation{
		DayDate:            dayDate,
		ShiftStart:         req.OriginalShift.StartTime,
		ShiftEnd:           req.OriginalShift.EndTime,
		CoveringEmployeeID: req.AcceptedBy,
		Note: schedule.CoverageNote{
			OriginalEmployeeID: req.OriginalEmployeeID,
			CoveringEmployeeID: req.AcceptedBy,
			CompensationType:   comp.Type,
			Amount:             amount,
		},
		Absence: schedule.AbsenceMarker{
			EmployeeID: req.OriginalEmployeeID,
			Date:       dayDate.Format(schedule.DateLayout),
			Type:       abs.Type,
			Status:     abs.JustificationStatus,
			Reason:     req.Reason,
		},
	})
	if err != nil {
		slog.Warn("failed to apply coverage to schedule", "requestId", requestID, "error", err)
	} else if !applied {
		slog.Warn("schedule no longer contains the covered shift, skipping mutation",
			"requestId", requestID, "scheduleId", req.OriginalShift.ScheduleID)
	}

	if _, err := s.Absences.Create(ctx, absence.Record{
		EmployeeID:    req.OriginalEmployeeID,
		Date:          dayDate,
		Type:          abs.Type,
		Justification: abs.Justification,
		Reason:        req.Reason,
		Attachments:   req.Attachments,
		ShiftRef:      req.OriginalShift.Key(),
		ApprovedBy:    actor.UserID,
	}); err != nil {
		slog.Warn("failed to record absence for covered shift", "requestId", requestID, "error", err)
	}

	switch comp.Type {
	case CompensationExtraHour:
		if _, err := s.Compensation.GrantExtraHours(ctx, req.AcceptedBy, amount, requestID); err != nil {
			slog.Warn("failed to grant extra hours", "requestId", requestID, "error", err)
		}
	case CompensationVacationDay:
		if err := s.Compensation.CreditVacationDays(ctx, req.AcceptedBy, amount); err != nil {
			slog.Warn("failed to credit vacation days", "requestId", requestID, "error", err)
		}
	}

	updated, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.sideEffect(ctx, requestID, func(ctx context.Context) {
		userIDs, err := s.Directory.UserIDsForEmployees(ctx, []string{req.OriginalEmployeeID, req.AcceptedBy})
		if err != nil {
			slog.Warn("failed to resolve users for finalization notice", "requestId", requestID, "error", err)
			return
		}
		s.Notifier.Notify(ctx, userIDs, notifications.TypeCoverageFinalized,
			"Shift coverage finalized",
			fmt.Sprintf("Coverage for the shift on %s has been finalized.", dayDate.Format(schedule.DateLayout)),
			"/coverage/"+requestID)
	})
	s.publish(requestID, "request.finalized", updated)

	return updated, nil
}

func (s *Service) compensationAmount(req *CoverageRequest, comp CompensationInput) (float64, error) {
	if comp.Amount > 0 {
		return comp.Amount, nil
	}
	if comp.Type == CompensationVacationDay {
		return 1, nil
	}
	hours, err := ShiftDurationHours(req.OriginalShift.StartTime, req.OriginalShift.EndTime)
	if err != nil {
		return 0, err
	}
	return hours, nil
}

func (s *Service) Get(ctx context.Context, requestID string) (*CoverageRequest, error) {
	return s.Store.Get(ctx, requestID)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]CoverageRequest, int, error) {
	return s.Store.List(ctx, filter, limit, offset)
}

// IsWorkflowError reports whether err maps to a well-known workflow failure
// the transport layer can translate to a client error.
func IsWorkflowError(err error) bool {
	for _, known := range []error{
		ErrNotFound, ErrDuplicateActiveRequest, ErrInvalidState,
		ErrUnauthorized, ErrOfferTaken, ErrOfferUnavailable, ErrInvalidCompensation,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func (s *Service) sideEffect(ctx context.Context, requestID string, run func(context.Context)) {
	if s.Notifier == nil {
		return
	}
	if s.Jobs != nil {
		s.Jobs.Enqueue(jobNotifyFanout, requestID, func(ctx context.Context) (any, error) {
			run(ctx)
			return nil, nil
		})
		return
	}
	run(ctx)
}

func (s *Service) publish(requestID, event string, payload any) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish("coverage:"+requestID, event, payload)
	s.Publisher.Publish("coverage", event, payload)
}
