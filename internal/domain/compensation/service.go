package compensation

import (
	"context"
	"errors"
)

type Service struct {
	Store StoreAPI
}

var ErrNotFound = errors.New("not found")

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// GrantExtraHours records an auto-approved extra-hours credit for a covering
// employee.
func (s *Service) GrantExtraHours(ctx context.Context, employeeID string, hours float64, sourceRef string) (string, error) {
	if hours <= 0 {
		return "", errors.New("hours must be positive")
	}
	return s.Store.CreateExtraHourGrant(ctx, employeeID, hours, sourceRef)
}

// CreditVacationDays adds days to the employee's vacation balance. An
// employee without a tracker gets one initialized with the default allotment
// first; both the allotment and the remaining balance then grow by days.
func (s *Service) CreditVacationDays(ctx context.Context, employeeID string, days float64) error {
	if days <= 0 {
		return errors.New("days must be positive")
	}

	balance, err := s.Store.GetVacationBalance(ctx, employeeID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if balance == nil {
		if err := s.Store.CreateVacationBalance(ctx, VacationBalance{
			EmployeeID: employeeID,
			Allotment:  DefaultVacationAllotment,
			Remaining:  0,
		}); err != nil {
			return err
		}
	}

	return s.Store.IncrementVacationBalance(ctx, employeeID, days)
}

// GetVacationBalance returns the tracker, or the untouched default when the
// employee has never been credited.
func (s *Service) GetVacationBalance(ctx context.Context, employeeID string) (*VacationBalance, error) {
	balance, err := s.Store.GetVacationBalance(ctx, employeeID)
	if errors.Is(err, ErrNotFound) {
		return &VacationBalance{
			EmployeeID: employeeID,
			Allotment:  DefaultVacationAllotment,
			Remaining:  0,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return balance, nil
}

func (s *Service) ListExtraHourGrants(ctx context.Context, employeeID string, limit, offset int) ([]ExtraHourGrant, error) {
	return s.Store.ListExtraHourGrants(ctx, employeeID, limit, offset)
}

func (s *Service) ListVacationBalances(ctx context.Context, limit, offset int) ([]VacationBalance, error) {
	return s.Store.ListVacationBalances(ctx, limit, offset)
}
