package absence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, rec Record) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO absence_records (employee_id, date, type, justification, reason, attachments, shift_ref, approved_by)
    VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8,'')::uuid)
    RETURNING id
  `, rec.EmployeeID, rec.Date, rec.Type, rec.Justification, rec.Reason, rec.Attachments, rec.ShiftRef, rec.ApprovedBy).Scan(&id)
	return id, err
}

func (s *Store) List(ctx context.Context, employeeID string, limit, offset int) ([]Record, error) {
	query := `
    SELECT id, employee_id, date, type, justification, COALESCE(reason, ''),
           COALESCE(attachments, '{}'), COALESCE(shift_ref, ''), COALESCE(approved_by::text, ''), created_at
    FROM absence_records
  `
	args := []any{}
	if employeeID != "" {
		query += " WHERE employee_id = $1"
		args = append(args, employeeID)
	}
	query += " ORDER BY date DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Type, &rec.Justification,
			&rec.Reason, &rec.Attachments, &rec.ShiftRef, &rec.ApprovedBy, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
