package coverage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"roster/internal/domain/absence"
	"roster/internal/domain/auth"
	"roster/internal/domain/org"
	"roster/internal/domain/schedule"
)

type fakeStore struct {
	mu   sync.Mutex
	seq  int
	reqs map[string]*CoverageRequest
}

func newFakeStore() *fakeStore {
	return &fakeStore{reqs: map[string]*CoverageRequest{}}
}

func cloneRequest(r *CoverageRequest) *CoverageRequest {
	cp := *r
	cp.Candidates = append([]string(nil), r.Candidates...)
	cp.Attachments = append([]string(nil), r.Attachments...)
	return &cp
}

func (f *fakeStore) Create(_ context.Context, req *CoverageRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	id := fmt.Sprintf("req-%d", f.seq)
	cp := cloneRequest(req)
	cp.ID = id
	cp.CreatedAt = time.Now()
	f.reqs[id] = cp
	return id, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (*CoverageRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.reqs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRequest(req), nil
}

func (f *fakeStore) List(_ context.Context, filter ListFilter, limit, offset int) ([]CoverageRequest, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []CoverageRequest
	for _, req := range f.reqs {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		if filter.StoreID != "" && req.OriginalShift.StoreID != filter.StoreID {
			continue
		}
		out = append(out, *cloneRequest(req))
	}
	return out, len(out), nil
}

func (f *fakeStore) ActiveRequestExists(_ context.Context, shift ShiftRef) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.reqs {
		if req.OriginalShift.Key() == shift.Key() && req.Status != StatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) AddCandidates(_ context.Context, id string, candidateIDs []string, message string, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.reqs[id]
	if !ok {
		return ErrNotFound
	}
	for _, cid := range candidateIDs {
		found := false
		for _, existing := range req.Candidates {
			if existing == cid {
				found = true
				break
			}
		}
		if !found {
			req.Candidates = append(req.Candidates, cid)
		}
	}
	req.Status = StatusSeekingCoverage
	req.HRMessage = message
	req.OfferSentAt = &sentAt
	return nil
}

func (f *fakeStore) RemoveCandidate(_ context.Context, id, employeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.reqs[id]
	if !ok {
		return ErrNotFound
	}
	kept := req.Candidates[:0]
	for _, cid := range req.Candidates {
		if cid != employeeID {
			kept = append(kept, cid)
		}
	}
	req.Candidates = kept
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.reqs[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	return nil
}

func (f *fakeStore) TryAccept(_ context.Context, id, employeeID string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.reqs[id]
	if !ok {
		return false, ErrNotFound
	}
	if req.Status != StatusSeekingCoverage {
		return false, nil
	}
	req.Status = StatusAwaitingFinalization
	req.AcceptedBy = employeeID
	req.AcceptedAt = &at
	return true, nil
}

func (f *fakeStore) MarkCovered(_ context.Context, id, compensationType string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.reqs[id]
	if !ok {
		return false, ErrNotFound
	}
	if req.Status != StatusAwaitingFinalization {
		return false, nil
	}
	req.Status = StatusCovered
	req.CompensationType = compensationType
	return true, nil
}

type fakeDirectory struct {
	employees []org.Employee
	index     map[string]string
	heads     map[string]struct{}
	userIDs   map[string]string
	hrUserIDs []string
}

func (f *fakeDirectory) ListActiveEmployees(_ context.Context) ([]org.Employee, error) {
	return f.employees, nil
}

func (f *fakeDirectory) GlobalDepartmentHeads(_ context.Context, _ string) (map[string]struct{}, error) {
	if f.heads == nil {
		return map[string]struct{}{}, nil
	}
	return f.heads, nil
}

func (f *fakeDirectory) DepartmentGlobalIndex(_ context.Context) (map[string]string, error) {
	if f.index == nil {
		return map[string]string{}, nil
	}
	return f.index, nil
}

func (f *fakeDirectory) UserIDsForEmployees(_ context.Context, employeeIDs []string) ([]string, error) {
	var out []string
	for _, id := range employeeIDs {
		if uid, ok := f.userIDs[id]; ok {
			out = append(out, uid)
		}
	}
	return out, nil
}

func (f *fakeDirectory) PrivilegedUserIDs(_ context.Context, _ []string) ([]string, error) {
	return f.hrUserIDs, nil
}

type fakeSchedules struct {
	mu      sync.Mutex
	working map[string]struct{}
	applied []schedule.CoverageMutation
	applyOK bool
	err     error
}

func (f *fakeSchedules) WorkingEmployeeIDs(_ context.Context, _ string, _ time.Time) (map[string]struct{}, error) {
	if f.working == nil {
		return map[string]struct{}{}, nil
	}
	return f.working, nil
}

func (f *fakeSchedules) ApplyCoverage(_ context.Context, _ string, m schedule.CoverageMutation) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if !f.applyOK {
		return false, nil
	}
	f.applied = append(f.applied, m)
	return true, nil
}

type fakeAbsences struct {
	mu      sync.Mutex
	records []absence.Record
	err     error
}

func (f *fakeAbsences) Create(_ context.Context, rec absence.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.records = append(f.records, rec)
	return fmt.Sprintf("abs-%d", len(f.records)), nil
}

type compGrant struct {
	employeeID string
	amount     float64
}

type fakeCompensation struct {
	mu      sync.Mutex
	hours   []compGrant
	days    []compGrant
}

func (f *fakeCompensation) GrantExtraHours(_ context.Context, employeeID string, hours float64, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hours = append(f.hours, compGrant{employeeID, hours})
	return "grant-1", nil
}

func (f *fakeCompensation) CreditVacationDays(_ context.Context, employeeID string, days float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, compGrant{employeeID, days})
	return nil
}

type notice struct {
	userIDs []string
	ntype   string
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (f *fakeNotifier) Notify(_ context.Context, userIDs []string, ntype, _, _, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice{userIDs: userIDs, ntype: ntype})
}

func (f *fakeNotifier) byType(ntype string) []notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []notice
	for _, n := range f.notices {
		if n.ntype == ntype {
			out = append(out, n)
		}
	}
	return out
}

type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (f *fakePublisher) Publish(_, event string, _ any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

type fixture struct {
	svc       *Service
	store     *fakeStore
	dir       *fakeDirectory
	schedules *fakeSchedules
	absences  *fakeAbsences
	comp      *fakeCompensation
	notifier  *fakeNotifier
	publisher *fakePublisher
}

func newFixture() *fixture {
	f := &fixture{
		store: newFakeStore(),
		dir: &fakeDirectory{
			userIDs:   map[string]string{"e1": "u1", "e2": "u2", "e3": "u3", "reporter": "u-rep"},
			hrUserIDs: []string{"u-hr"},
		},
		schedules: &fakeSchedules{applyOK: true},
		absences:  &fakeAbsences{},
		comp:      &fakeCompensation{},
		notifier:  &fakeNotifier{},
		publisher: &fakePublisher{},
	}
	f.svc = NewService(f.store, f.dir, f.schedules, f.absences, f.comp, f.notifier, f.publisher)
	return f
}

func testShift() ShiftRef {
	return ShiftRef{
		ScheduleID:   "sched-1",
		DayDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		ShiftName:    "Evening",
		StartTime:    "16:00",
		EndTime:      "23:00",
		StoreID:      "s1",
		DepartmentID: "d1",
	}
}

func employeeActor(id string) auth.UserContext {
	return auth.UserContext{UserID: "u-" + id, EmployeeID: id, RoleName: auth.RoleEmployee}
}

func hrActor() auth.UserContext {
	return auth.UserContext{UserID: "u-hr", EmployeeID: "hr-emp", RoleName: auth.RoleHR}
}

func (f *fixture) seedSeeking(t *testing.T, candidates ...string) string {
	t.Helper()
	ctx := context.Background()
	req, err := f.svc.Report(ctx, testShift(), "reporter", "sick", nil)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if _, err := f.svc.Invite(ctx, req.ID, candidates, "please help", hrActor()); err != nil {
		t.Fatalf("invite: %v", err)
	}
	return req.ID
}

func TestReportCreatesPendingRequest(t *testing.T) {
	f := newFixture()
	req, err := f.svc.Report(context.Background(), testShift(), "reporter", "sick", []string{"note.pdf"})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if req.Status != StatusPendingHR {
		t.Fatalf("status = %s, want %s", req.Status, StatusPendingHR)
	}
	if len(req.Candidates) != 0 {
		t.Fatalf("expected empty candidate pool, got %v", req.Candidates)
	}
	if got := f.notifier.byType("coverage_reported"); len(got) != 1 {
		t.Fatalf("expected one HR notification, got %d", len(got))
	}
}

func TestReportRejectsDuplicateActiveRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.svc.Report(ctx, testShift(), "reporter", "sick", nil); err != nil {
		t.Fatalf("first report: %v", err)
	}
	_, err := f.svc.Report(ctx, testShift(), "other", "also sick", nil)
	if !errors.Is(err, ErrDuplicateActiveRequest) {
		t.Fatalf("expected ErrDuplicateActiveRequest, got %v", err)
	}
}

func TestReportAllowsNewRequestAfterCancellation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req, err := f.svc.Report(ctx, testShift(), "reporter", "sick", nil)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if err := f.svc.Cancel(ctx, req.ID, hrActor()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.svc.Report(ctx, testShift(), "reporter", "still sick", nil); err != nil {
		t.Fatalf("re-report after cancel: %v", err)
	}
}

func TestInviteRequiresPrivilege(t *testing.T) {
	f := newFixture()
	req, _ := f.svc.Report(context.Background(), testShift(), "reporter", "sick", nil)
	_, err := f.svc.Invite(context.Background(), req.ID, []string{"e1"}, "", employeeActor("e1"))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestInviteFiltersReporterAndDuplicates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req, _ := f.svc.Report(ctx, testShift(), "reporter", "sick", nil)

	updated, err := f.svc.Invite(ctx, req.ID, []string{"e1", "reporter", "e1", "", "e2"}, "", hrActor())
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if len(updated.Candidates) != 2 {
		t.Fatalf("candidates = %v, want [e1 e2]", updated.Candidates)
	}
	if updated.Status != StatusSeekingCoverage {
		t.Fatalf("status = %s, want %s", updated.Status, StatusSeekingCoverage)
	}

	// Re-inviting an existing candidate neither duplicates nor re-notifies.
	before := len(f.notifier.byType("coverage_offer"))
	updated, err = f.svc.Invite(ctx, req.ID, []string{"e1"}, "", hrActor())
	if err != nil {
		t.Fatalf("re-invite: %v", err)
	}
	if len(updated.Candidates) != 2 {
		t.Fatalf("candidates after re-invite = %v", updated.Candidates)
	}
	if after := len(f.notifier.byType("coverage_offer")); after != before {
		t.Fatalf("re-invite sent %d extra offer notifications", after-before)
	}
}

func TestInviteRejectedOnceAccepted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1")
	if _, err := f.svc.Accept(ctx, id, employeeActor("e1")); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, err := f.svc.Invite(ctx, id, []string{"e2"}, "", hrActor())
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestDeclineRemovesCandidate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1", "e2")

	if err := f.svc.Decline(ctx, id, employeeActor("e1")); err != nil {
		t.Fatalf("decline: %v", err)
	}
	req, _ := f.svc.Get(ctx, id)
	if req.HasCandidate("e1") {
		t.Fatal("e1 still in candidate pool after decline")
	}
	if !req.HasCandidate("e2") {
		t.Fatal("decline removed the wrong candidate")
	}
	if req.Status != StatusSeekingCoverage {
		t.Fatalf("decline changed status to %s", req.Status)
	}
}

func TestDeclineAfterAcceptReturnsOfferUnavailable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1", "e2")
	if _, err := f.svc.Accept(ctx, id, employeeActor("e1")); err != nil {
		t.Fatalf("accept: %v", err)
	}
	err := f.svc.Decline(ctx, id, employeeActor("e2"))
	if !errors.Is(err, ErrOfferUnavailable) {
		t.Fatalf("expected ErrOfferUnavailable, got %v", err)
	}
}

func TestAcceptFirstCandidateWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1", "e2")

	if _, err := f.svc.Accept(ctx, id, employeeActor("e1")); err != nil {
		t.Fatalf("accept: %v", err)
	}
	_, err := f.svc.Accept(ctx, id, employeeActor("e2"))
	if !errors.Is(err, ErrOfferTaken) {
		t.Fatalf("expected ErrOfferTaken for the loser, got %v", err)
	}

	req, _ := f.svc.Get(ctx, id)
	if req.Status != StatusAwaitingFinalization || req.AcceptedBy != "e1" {
		t.Fatalf("request = %s/%s, want awaiting_finalization/e1", req.Status, req.AcceptedBy)
	}
	if got := f.notifier.byType("coverage_offer_taken"); len(got) != 1 {
		t.Fatalf("expected one offer-taken fan-out, got %d", len(got))
	}
}

func TestAcceptConcurrentRaceHasSingleWinner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	const n = 16
	candidates := make([]string, n)
	for i := range candidates {
		candidates[i] = fmt.Sprintf("e%d", i)
		f.dir.userIDs[candidates[i]] = fmt.Sprintf("u%d", i)
	}
	id := f.seedSeeking(t, candidates...)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, taken, other := 0, 0, 0
	for _, cid := range candidates {
		wg.Add(1)
		go func(cid string) {
			defer wg.Done()
			_, err := f.svc.Accept(ctx, id, employeeActor(cid))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrOfferTaken):
				taken++
			default:
				other++
			}
		}(cid)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("winners = %d, want exactly 1", wins)
	}
	if taken != n-1 {
		t.Fatalf("offer-taken losers = %d, want %d", taken, n-1)
	}
	if other != 0 {
		t.Fatalf("unexpected errors during race: %d", other)
	}

	req, _ := f.svc.Get(ctx, id)
	if req.Status != StatusAwaitingFinalization {
		t.Fatalf("status = %s, want %s", req.Status, StatusAwaitingFinalization)
	}
}

func TestAcceptIsIdempotentForWinner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1")
	if _, err := f.svc.Accept(ctx, id, employeeActor("e1")); err != nil {
		t.Fatalf("accept: %v", err)
	}
	req, err := f.svc.Accept(ctx, id, employeeActor("e1"))
	if err != nil {
		t.Fatalf("repeat accept by winner: %v", err)
	}
	if req.AcceptedBy != "e1" {
		t.Fatalf("acceptedBy = %s", req.AcceptedBy)
	}
}

func TestAcceptUninvitedEmployeeUnauthorized(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1")
	_, err := f.svc.Accept(ctx, id, employeeActor("e3"))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// Privileged users may claim without an invitation.
	if _, err := f.svc.Accept(ctx, id, hrActor()); err != nil {
		t.Fatalf("privileged accept: %v", err)
	}
}

func TestCancelGuards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1")

	if err := f.svc.Cancel(ctx, id, employeeActor("e2")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for stranger, got %v", err)
	}
	if err := f.svc.Cancel(ctx, id, employeeActor("reporter")); err != nil {
		t.Fatalf("reporter cancel: %v", err)
	}
	if err := f.svc.Cancel(ctx, id, hrActor()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState cancelling twice, got %v", err)
	}
}

func TestCancelRejectedOnceAccepted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1")
	if _, err := f.svc.Accept(ctx, id, employeeActor("e1")); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := f.svc.Cancel(ctx, id, hrActor()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestFinalizeExtraHourOvernightShift(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	shift := testShift()
	shift.StartTime = "22:00"
	shift.EndTime = "02:00"
	req, err := f.svc.Report(ctx, shift, "reporter", "sick", nil)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if _, err := f.svc.Invite(ctx, req.ID, []string{"e1"}, "", hrActor()); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := f.svc.Accept(ctx, req.ID, employeeActor("e1")); err != nil {
		t.Fatalf("accept: %v", err)
	}

	final, err := f.svc.Finalize(ctx, req.ID, CompensationInput{Type: CompensationExtraHour}, AbsenceInput{}, hrActor())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if final.Status != StatusCovered {
		t.Fatalf("status = %s, want %s", final.Status, StatusCovered)
	}

	if len(f.comp.hours) != 1 {
		t.Fatalf("expected one extra-hour grant, got %d", len(f.comp.hours))
	}
	if g := f.comp.hours[0]; g.employeeID != "e1" || g.amount != 4 {
		t.Fatalf("grant = %+v, want e1 with 4 hours", g)
	}

	if len(f.schedules.applied) != 1 {
		t.Fatalf("expected one schedule mutation, got %d", len(f.schedules.applied))
	}
	m := f.schedules.applied[0]
	if m.CoveringEmployeeID != "e1" || m.Note.OriginalEmployeeID != "reporter" {
		t.Fatalf("mutation = %+v", m)
	}

	if len(f.absences.records) != 1 {
		t.Fatalf("expected one absence record, got %d", len(f.absences.records))
	}
	rec := f.absences.records[0]
	if rec.EmployeeID != "reporter" || rec.Type != AbsenceTypeCovered {
		t.Fatalf("absence record = %+v", rec)
	}
}

func TestFinalizeVacationDayCreditsOneDay(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1")
	if _, err := f.svc.Accept(ctx, id, employeeActor("e1")); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := f.svc.Finalize(ctx, id, CompensationInput{Type: CompensationVacationDay}, AbsenceInput{}, hrActor()); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if len(f.comp.days) != 1 {
		t.Fatalf("expected one vacation credit, got %d", len(f.comp.days))
	}
	if c := f.comp.days[0]; c.employeeID != "e1" || c.amount != 1 {
		t.Fatalf("credit = %+v, want e1 with 1 day", c)
	}
	if len(f.comp.hours) != 0 {
		t.Fatal("vacation finalization also granted extra hours")
	}
}

func TestFinalizeGuards(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	id := f.seedSeeking(t, "e1")

	if _, err := f.svc.Finalize(ctx, id, CompensationInput{Type: CompensationExtraHour}, AbsenceInput{}, employeeActor("e1")); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.Finalize(ctx, id, CompensationInput{Type: "overtime"}, AbsenceInput{}, hrActor()); !errors.Is(err, ErrInvalidCompensation) {
		t.Fatalf("expected ErrInvalidCompensation, got %v", err)
	}
	if _, err := f.svc.Finalize(ctx, id, CompensationInput{Type: CompensationExtraHour}, AbsenceInput{}, hrActor()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState before acceptance, got %v", err)
	}
}

func TestFinalizeSurvivesMissingShift(t *testing.T) {
	// The schedule may have been edited since the report; the finalization
	// still completes and only the schedule mutation is skipped.
	f := newFixture()
	f.schedules.applyOK = false
	ctx := context.Background()
	id := f.seedSeeking(t, "e1")
	if _, err := f.svc.Accept(ctx, id, employeeActor("e1")); err != nil {
		t.Fatalf("accept: %v", err)
	}

	final, err := f.svc.Finalize(ctx, id, CompensationInput{Type: CompensationExtraHour}, AbsenceInput{}, hrActor())
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if final.Status != StatusCovered {
		t.Fatalf("status = %s, want %s", final.Status, StatusCovered)
	}
	if len(f.schedules.applied) != 0 {
		t.Fatal("mutation applied despite missing shift")
	}
	if len(f.absences.records) != 1 || len(f.comp.hours) != 1 {
		t.Fatal("absence record and compensation should still be written")
	}
}

func TestEligibleCandidatesExcludesReporterInvitedAndWorking(t *testing.T) {
	f := newFixture()
	f.dir.employees = []org.Employee{
		{ID: "reporter", StoreID: "s1", DepartmentID: "d1"},
		{ID: "e1", StoreID: "s1", DepartmentID: "d1"},
		{ID: "e2", StoreID: "s1", DepartmentID: "d1"},
		{ID: "e3", StoreID: "s1", DepartmentID: "d1"},
	}
	f.schedules.working = map[string]struct{}{"e3": {}}

	ctx := context.Background()
	id := f.seedSeeking(t, "e1")

	got, err := f.svc.EligibleCandidates(ctx, id)
	if err != nil {
		t.Fatalf("eligible candidates: %v", err)
	}
	if len(got) != 1 || got[0].EmployeeID != "e2" {
		t.Fatalf("pool = %+v, want only e2", got)
	}
	if got[0].Tier != 1 {
		t.Fatalf("tier = %d, want 1", got[0].Tier)
	}
}
