package compensation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateExtraHourGrant(ctx context.Context, employeeID string, hours float64, sourceRef string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO extra_hour_grants (employee_id, hours, source_ref, status)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, employeeID, hours, sourceRef, GrantStatusApproved).Scan(&id)
	return id, err
}

func (s *Store) GetVacationBalance(ctx context.Context, employeeID string) (*VacationBalance, error) {
	var balance VacationBalance
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, allotment, remaining, updated_at
    FROM vacation_balances
    WHERE employee_id = $1
  `, employeeID).Scan(&balance.EmployeeID, &balance.Allotment, &balance.Remaining, &balance.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

func (s *Store) CreateVacationBalance(ctx context.Context, balance VacationBalance) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO vacation_balances (employee_id, allotment, remaining)
    VALUES ($1, $2, $3)
    ON CONFLICT (employee_id) DO NOTHING
  `, balance.EmployeeID, balance.Allotment, balance.Remaining)
	return err
}

func (s *Store) IncrementVacationBalance(ctx context.Context, employeeID string, days float64) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE vacation_balances
    SET allotment = allotment + $1, remaining = remaining + $1, updated_at = now()
    WHERE employee_id = $2
  `, days, employeeID)
	return err
}

func (s *Store) ListExtraHourGrants(ctx context.Context, employeeID string, limit, offset int) ([]ExtraHourGrant, error) {
	query := `
    SELECT id, employee_id, hours, COALESCE(source_ref, ''), status, created_at
    FROM extra_hour_grants
  `
	args := []any{}
	if employeeID != "" {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	query += " ORDER BY created_at DESC"
	query += paginate(len(args), &args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []ExtraHourGrant
	for rows.Next() {
		var grant ExtraHourGrant
		if err := rows.Scan(&grant.ID, &grant.EmployeeID, &grant.Hours, &grant.SourceRef, &grant.Status, &grant.CreatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, grant)
	}
	return grants, rows.Err()
}

func (s *Store) ListVacationBalances(ctx context.Context, limit, offset int) ([]VacationBalance, error) {
	query := `
    SELECT employee_id, allotment, remaining, updated_at
    FROM vacation_balances
    ORDER BY employee_id
  `
	args := []any{}
	query += paginate(0, &args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []VacationBalance
	for rows.Next() {
		var balance VacationBalance
		if err := rows.Scan(&balance.EmployeeID, &balance.Allotment, &balance.Remaining, &balance.UpdatedAt); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}

func paginate(argCount int, args *[]any, limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	*args = append(*args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
}
