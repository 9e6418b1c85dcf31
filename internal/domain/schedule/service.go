package schedule

import (
	"context"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) Create(ctx context.Context, sched Schedule) (string, error) {
	return s.Store.Create(ctx, sched)
}

func (s *Service) Get(ctx context.Context, scheduleID string) (*Schedule, error) {
	return s.Store.Get(ctx, scheduleID)
}

func (s *Service) List(ctx context.Context, storeID string, limit, offset int) ([]Schedule, error) {
	return s.Store.List(ctx, storeID, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, scheduleID, status string) error {
	return s.Store.UpdateStatus(ctx, scheduleID, status)
}

// ApplyCoverage applies the finalize mutation to the schedule document.
// Returns false without touching the document when the day or shift cannot
// be located; the coverage workflow proceeds regardless.
func (s *Service) ApplyCoverage(ctx context.Context, scheduleID string, m CoverageMutation) (bool, error) {
	sched, err := s.Store.Get(ctx, scheduleID)
	if err != nil {
		return false, err
	}

	if !applyMutation(sched, m) {
		return false, nil
	}

	if err := s.Store.saveDocument(ctx, sched); err != nil {
		return false, err
	}
	return true, nil
}

func applyMutation(sched *Schedule, m CoverageMutation) bool {
	key := m.DayDate.Format(DateLayout)
	for di := range sched.Days {
		if sched.Days[di].Date != key {
			continue
		}
		for si := range sched.Days[di].Shifts {
			shift := &sched.Days[di].Shifts[si]
			if shift.StartTime != m.ShiftStart || shift.EndTime != m.ShiftEnd {
				continue
			}
			if !containsID(shift.EmployeeIDs, m.CoveringEmployeeID) {
				shift.EmployeeIDs = append(shift.EmployeeIDs, m.CoveringEmployeeID)
			}
			shift.CoverageNotes = append(shift.CoverageNotes, m.Note)
			sched.Absences = append(sched.Absences, m.Absence)
			return true
		}
	}
	return false
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
