package org

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type DataStore struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *DataStore {
	return &DataStore{DB: db}
}

func (s *DataStore) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id,
           COALESCE(user_id::text, ''),
           COALESCE(employee_number, ''),
           first_name, last_name, email,
           COALESCE(store_id::text, ''),
           COALESCE(department_id::text, ''),
           status, created_at
    FROM employees
    WHERE id = $1
  `, employeeID)

	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.StoreID, &emp.DepartmentID, &emp.Status, &emp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// ListActiveEmployees returns the roster in stable order (employee number,
// then id); the candidate resolver relies on this ordering for tie-breaks.
func (s *DataStore) ListActiveEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id,
           COALESCE(user_id::text, ''),
           COALESCE(employee_number, ''),
           first_name, last_name, email,
           COALESCE(store_id::text, ''),
           COALESCE(department_id::text, ''),
           status, created_at
    FROM employees
    WHERE status = $1
    ORDER BY employee_number, id
  `, EmployeeStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(
			&emp.ID, &emp.UserID, &emp.EmployeeNumber, &emp.FirstName, &emp.LastName, &emp.Email,
			&emp.StoreID, &emp.DepartmentID, &emp.Status, &emp.CreatedAt,
		); err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *DataStore) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (user_id, employee_number, first_name, last_name, email, store_id, department_id, status)
    VALUES (NULLIF($1,'')::uuid, $2, $3, $4, $5, NULLIF($6,'')::uuid, NULLIF($7,'')::uuid, $8)
    RETURNING id
  `, emp.UserID, emp.EmployeeNumber, emp.FirstName, emp.LastName, emp.Email, emp.StoreID, emp.DepartmentID, emp.Status).Scan(&id)
	return id, err
}

func (s *DataStore) ListStores(ctx context.Context) ([]Store, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, COALESCE(city, ''), created_at
    FROM stores
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var st Store
		if err := rows.Scan(&st.ID, &st.Name, &st.City, &st.CreatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, st)
	}
	return stores, rows.Err()
}

func (s *DataStore) CreateStore(ctx context.Context, st Store) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx,
		"INSERT INTO stores (name, city) VALUES ($1, $2) RETURNING id",
		st.Name, st.City,
	).Scan(&id)
	return id, err
}

func (s *DataStore) ListDepartments(ctx context.Context, storeID string) ([]Department, error) {
	query := `
    SELECT id, store_id, global_department_id, name, created_at
    FROM departments
  `
	args := []any{}
	if storeID != "" {
		query += " WHERE store_id = $1"
		args = append(args, storeID)
	}
	query += " ORDER BY name"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []Department
	for rows.Next() {
		var dept Department
		if err := rows.Scan(&dept.ID, &dept.StoreID, &dept.GlobalDepartmentID, &dept.Name, &dept.CreatedAt); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}

func (s *DataStore) CreateDepartment(ctx context.Context, dept Department) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx,
		"INSERT INTO departments (store_id, global_department_id, name) VALUES ($1, $2, $3) RETURNING id",
		dept.StoreID, dept.GlobalDepartmentID, dept.Name,
	).Scan(&id)
	return id, err
}

func (s *DataStore) ListGlobalDepartments(ctx context.Context) ([]GlobalDepartment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT gd.id, gd.name, gd.created_at,
           COALESCE(array_agg(gdh.employee_id::text) FILTER (WHERE gdh.employee_id IS NOT NULL), '{}')
    FROM global_departments gd
    LEFT JOIN global_department_heads gdh ON gdh.global_department_id = gd.id
    GROUP BY gd.id, gd.name, gd.created_at
    ORDER BY gd.name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GlobalDepartment
	for rows.Next() {
		var gd GlobalDepartment
		if err := rows.Scan(&gd.ID, &gd.Name, &gd.CreatedAt, &gd.HeadIDs); err != nil {
			return nil, err
		}
		out = append(out, gd)
	}
	return out, rows.Err()
}

func (s *DataStore) CreateGlobalDepartment(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO global_departments (name) VALUES ($1) RETURNING id", name).Scan(&id)
	return id, err
}

func (s *DataStore) AddGlobalDepartmentHead(ctx context.Context, globalDepartmentID, employeeID string) error {
	_, err := s.DB.Exec(ctx,
		"INSERT INTO global_department_heads (global_department_id, employee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		globalDepartmentID, employeeID,
	)
	return err
}

// ParentGlobalDepartment resolves a store department to its global grouping.
func (s *DataStore) ParentGlobalDepartment(ctx context.Context, departmentID string) (string, error) {
	var globalID string
	err := s.DB.QueryRow(ctx,
		"SELECT global_department_id FROM departments WHERE id = $1",
		departmentID,
	).Scan(&globalID)
	return globalID, err
}

func (s *DataStore) GlobalDepartmentHeads(ctx context.Context, globalDepartmentID string) (map[string]struct{}, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT employee_id FROM global_department_heads WHERE global_department_id = $1",
		globalDepartmentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	heads := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		heads[id] = struct{}{}
	}
	return heads, rows.Err()
}

// DepartmentGlobalIndex maps every store department id to its global
// department id in one query; the resolver uses it to tier candidates.
func (s *DataStore) DepartmentGlobalIndex(ctx context.Context) (map[string]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, global_department_id FROM departments")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	index := map[string]string{}
	for rows.Next() {
		var id, globalID string
		if err := rows.Scan(&id, &globalID); err != nil {
			return nil, err
		}
		index[id] = globalID
	}
	return index, rows.Err()
}

// PrivilegedUserIDs lists the users holding any of the given roles; the
// coverage workflow notifies them when a shift is reported uncoverable.
func (s *DataStore) PrivilegedUserIDs(ctx context.Context, roles []string) ([]string, error) {
	rows, err := s.DB.Query(ctx,
		"SELECT id::text FROM users WHERE role = ANY($1) AND status = 'active'",
		roles,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}

func (s *DataStore) UserIDsForEmployees(ctx context.Context, employeeIDs []string) ([]string, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT user_id::text
    FROM employees
    WHERE id = ANY($1) AND user_id IS NOT NULL
  `, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, rows.Err()
}
