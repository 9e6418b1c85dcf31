package compensation

import "context"

type StoreAPI interface {
	CreateExtraHourGrant(ctx context.Context, employeeID string, hours float64, sourceRef string) (string, error)
	GetVacationBalance(ctx context.Context, employeeID string) (*VacationBalance, error)
	CreateVacationBalance(ctx context.Context, balance VacationBalance) error
	IncrementVacationBalance(ctx context.Context, employeeID string, days float64) error
	ListExtraHourGrants(ctx context.Context, employeeID string, limit, offset int) ([]ExtraHourGrant, error)
	ListVacationBalances(ctx context.Context, limit, offset int) ([]VacationBalance, error)
}
