package coverage

import "context"

// EligibleCandidates builds the ranked pool HR picks invitations from. An
// employee is eligible when they are active, not already scheduled anywhere
// on the shift's day, not the reporter and not already invited. The pool is
// advisory: Invite accepts any employee id HR supplies.
func (s *Service) EligibleCandidates(ctx context.Context, requestID string) ([]Candidate, error) {
	req, err := s.Store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}

	working, err := s.Schedules.WorkingEmployeeIDs(ctx, "", req.OriginalShift.DayDate)
	if err != nil {
		return nil, err
	}
	roster, err := s.Directory.ListActiveEmployees(ctx)
	if err != nil {
		return nil, err
	}
	index, err := s.Directory.DepartmentGlobalIndex(ctx)
	if err != nil {
		return nil, err
	}

	globalID := index[req.OriginalShift.DepartmentID]
	heads := map[string]struct{}{}
	if globalID != "" {
		heads, err = s.Directory.GlobalDepartmentHeads(ctx, globalID)
		if err != nil {
			return nil, err
		}
	}

	exclude := map[string]struct{}{req.OriginalEmployeeID: {}}
	for _, id := range req.Candidates {
		exclude[id] = struct{}{}
	}

	return RankCandidates(roster, RankContext{
		ShiftStoreID:            req.OriginalShift.StoreID,
		ShiftDepartmentID:       req.OriginalShift.DepartmentID,
		ShiftGlobalDepartmentID: globalID,
		DepartmentGlobalIndex:   index,
		Heads:                   heads,
		Working:                 working,
		Exclude:                 exclude,
	}), nil
}
