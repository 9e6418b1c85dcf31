package schedule

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, sched Schedule) (string, error) {
	days, err := json.Marshal(sched.Days)
	if err != nil {
		return "", err
	}
	absences, err := json.Marshal(sched.Absences)
	if err != nil {
		return "", err
	}
	if sched.Status == "" {
		sched.Status = StatusDraft
	}

	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO schedules (store_id, department_id, name, status, days, absences)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id
  `, sched.StoreID, sched.DepartmentID, sched.Name, sched.Status, days, absences).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, scheduleID string) (*Schedule, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, store_id, department_id, name, status, days, absences, created_at
    FROM schedules
    WHERE id = $1
  `, scheduleID)
	return scanSchedule(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*Schedule, error) {
	var sched Schedule
	var days, absences []byte
	if err := row.Scan(
		&sched.ID, &sched.StoreID, &sched.DepartmentID, &sched.Name, &sched.Status,
		&days, &absences, &sched.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(days) > 0 {
		if err := json.Unmarshal(days, &sched.Days); err != nil {
			return nil, err
		}
	}
	if len(absences) > 0 {
		if err := json.Unmarshal(absences, &sched.Absences); err != nil {
			return nil, err
		}
	}
	return &sched, nil
}

// ListNonRejected feeds the working-employee snapshot; empty storeID scans
// every store.
func (s *Store) ListNonRejected(ctx context.Context, storeID string) ([]Schedule, error) {
	query := `
    SELECT id, store_id, department_id, name, status, days, absences, created_at
    FROM schedules
    WHERE status <> $1
  `
	args := []any{StatusRejected}
	if storeID != "" {
		query += " AND store_id = $2"
		args = append(args, storeID)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *sched)
	}
	return schedules, rows.Err()
}

func (s *Store) List(ctx context.Context, storeID string, limit, offset int) ([]Schedule, error) {
	query := `
    SELECT id, store_id, department_id, name, status, days, absences, created_at
    FROM schedules
  `
	args := []any{}
	if storeID != "" {
		query += " WHERE store_id = $1"
		args = append(args, storeID)
	}
	query += " ORDER BY created_at DESC"
	query += limitOffsetClause(len(args), &args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *sched)
	}
	return schedules, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, scheduleID, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE schedules SET status = $1 WHERE id = $2", status, scheduleID)
	return err
}

func limitOffsetClause(argCount int, args *[]any, limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	*args = append(*args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
}

func (s *Store) saveDocument(ctx context.Context, sched *Schedule) error {
	days, err := json.Marshal(sched.Days)
	if err != nil {
		return err
	}
	absences, err := json.Marshal(sched.Absences)
	if err != nil {
		return err
	}
	_, err = s.DB.Exec(ctx,
		"UPDATE schedules SET days = $1, absences = $2 WHERE id = $3",
		days, absences, sched.ID,
	)
	return err
}
