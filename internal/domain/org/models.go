package org

import "time"

type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GlobalDepartment is the organization-wide grouping that spans the per-store
// departments (e.g. every store's "Bakery" rolls up into the global Bakery).
type GlobalDepartment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HeadIDs   []string  `json:"headIds,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Department is the store-local instance of a global department.
type Department struct {
	ID                 string    `json:"id"`
	StoreID            string    `json:"storeId"`
	GlobalDepartmentID string    `json:"globalDepartmentId"`
	Name               string    `json:"name"`
	CreatedAt          time.Time `json:"createdAt"`
}

type Employee struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId,omitempty"`
	EmployeeNumber string    `json:"employeeNumber"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	StoreID        string    `json:"storeId"`
	DepartmentID   string    `json:"departmentId"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
)
