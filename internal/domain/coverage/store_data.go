package coverage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const requestColumns = `id, schedule_id, day_date, shift_name, start_time, end_time,
	store_id, department_id, employee_id, reason, attachments, status, candidates,
	hr_message, offer_sent_at, accepted_by, accepted_at, compensation_type, created_at`

func (s *Store) Create(ctx context.Context, req *CoverageRequest) (string, error) {
	query := `INSERT INTO coverage_requests
		(schedule_id, day_date, shift_name, start_time, end_time, store_id, department_id,
		 employee_id, reason, attachments, status, candidates)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	sh := req.OriginalShift
	var id string
	err := s.DB.QueryRow(ctx, query,
		sh.ScheduleID, sh.DayDate, sh.ShiftName, sh.StartTime, sh.EndTime,
		sh.StoreID, sh.DepartmentID,
		req.OriginalEmployeeID, req.Reason, req.Attachments, req.Status, req.Candidates,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create coverage request: %w", err)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (*CoverageRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM coverage_requests WHERE id = $1`

	req, err := scanRequest(s.DB.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get coverage request: %w", err)
	}
	return req, nil
}

func (s *Store) List(ctx context.Context, filter ListFilter, limit, offset int) ([]CoverageRequest, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	idx := 1
	if filter.StoreID != "" {
		where += fmt.Sprintf(" AND store_id = $%d", idx)
		args = append(args, filter.StoreID)
		idx++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	if !filter.From.IsZero() {
		where += fmt.Sprintf(" AND day_date >= $%d", idx)
		args = append(args, filter.From)
		idx++
	}
	if !filter.To.IsZero() {
		where += fmt.Sprintf(" AND day_date <= $%d", idx)
		args = append(args, filter.To)
		idx++
	}

	var total int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM coverage_requests"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count coverage requests: %w", err)
	}

	query := "SELECT " + requestColumns + " FROM coverage_requests" + where + " ORDER BY created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, limit, offset)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coverage requests: %w", err)
	}
	defer rows.Close()

	var out []CoverageRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan coverage request: %w", err)
		}
		out = append(out, *req)
	}
	return out, total, rows.Err()
}

func (s *Store) ActiveRequestExists(ctx context.Context, shift ShiftRef) (bool, error) {
	query := `SELECT COUNT(1) FROM coverage_requests
		WHERE schedule_id = $1 AND day_date = $2 AND start_time = $3 AND end_time = $4
		AND status <> $5`

	var count int
	err := s.DB.QueryRow(ctx, query,
		shift.ScheduleID, shift.DayDate, shift.StartTime, shift.EndTime, StatusCancelled,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check for active coverage request: %w", err)
	}
	return count > 0, nil
}

func (s *Store) AddCandidates(ctx context.Context, id string, candidateIDs []string, message string, sentAt time.Time) error {
	query := `UPDATE coverage_requests
		SET candidates = ARRAY(SELECT DISTINCT unnest(candidates || $2::text[])),
		    status = $3, hr_message = $4, offer_sent_at = $5
		WHERE id = $1`

	tag, err := s.DB.Exec(ctx, query, id, candidateIDs, StatusSeekingCoverage, message, sentAt)
	if err != nil {
		return fmt.Errorf("failed to add coverage candidates: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) RemoveCandidate(ctx context.Context, id, employeeID string) error {
	query := `UPDATE coverage_requests SET candidates = array_remove(candidates, $2) WHERE id = $1`

	tag, err := s.DB.Exec(ctx, query, id, employeeID)
	if err != nil {
		return fmt.Errorf("failed to remove coverage candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE coverage_requests SET status = $2 WHERE id = $1`

	tag, err := s.DB.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update coverage request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// TryAccept relies on the status guard in the WHERE clause to make the
// accept atomic: when two employees race, the database serializes the
// updates and only the first guard match reports an affected row.
func (s *Store) TryAccept(ctx context.Context, id, employeeID string, at time.Time) (bool, error) {
	query := `UPDATE coverage_requests
		SET accepted_by = $2, accepted_at = $3, status = $4
		WHERE id = $1 AND status = $5`

	tag, err := s.DB.Exec(ctx, query, id, employeeID, at, StatusAwaitingFinalization, StatusSeekingCoverage)
	if err != nil {
		return false, fmt.Errorf("failed to accept coverage offer: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) MarkCovered(ctx context.Context, id, compensationType string) (bool, error) {
	query := `UPDATE coverage_requests
		SET status = $2, compensation_type = $3
		WHERE id = $1 AND status = $4`

	tag, err := s.DB.Exec(ctx, query, id, StatusCovered, compensationType, StatusAwaitingFinalization)
	if err != nil {
		return false, fmt.Errorf("failed to mark coverage request covered: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*CoverageRequest, error) {
	var req CoverageRequest
	var reason, hrMessage, acceptedBy, compensationType *string
	err := row.Scan(
		&req.ID,
		&req.OriginalShift.ScheduleID,
		&req.OriginalShift.DayDate,
		&req.OriginalShift.ShiftName,
		&req.OriginalShift.StartTime,
		&req.OriginalShift.EndTime,
		&req.OriginalShift.StoreID,
		&req.OriginalShift.DepartmentID,
		&req.OriginalEmployeeID,
		&reason,
		&req.Attachments,
		&req.Status,
		&req.Candidates,
		&hrMessage,
		&req.OfferSentAt,
		&acceptedBy,
		&req.AcceptedAt,
		&compensationType,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if reason != nil {
		req.Reason = *reason
	}
	if hrMessage != nil {
		req.HRMessage = *hrMessage
	}
	if acceptedBy != nil {
		req.AcceptedBy = *acceptedBy
	}
	if compensationType != nil {
		req.CompensationType = *compensationType
	}
	return &req, nil
}
