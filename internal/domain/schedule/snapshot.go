package schedule

import (
	"context"
	"time"
)

// WorkingEmployeeIDs returns the employees committed to work on date. An
// empty storeID widens the scan to every store, which is what the candidate
// resolver needs: someone working anywhere that day cannot cover a shift.
func (s *Service) WorkingEmployeeIDs(ctx context.Context, storeID string, date time.Time) (map[string]struct{}, error) {
	schedules, err := s.Store.ListNonRejected(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return workingIDsOn(schedules, date), nil
}

func workingIDsOn(schedules []Schedule, date time.Time) map[string]struct{} {
	key := date.Format(DateLayout)
	working := map[string]struct{}{}
	for _, sched := range schedules {
		for _, day := range sched.Days {
			if day.Date != key {
				continue
			}
			for _, shift := range day.Shifts {
				if IsDayOffName(shift.Name) {
					continue
				}
				for _, employeeID := range shift.EmployeeIDs {
					working[employeeID] = struct{}{}
				}
			}
		}
	}
	return working
}
