package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryPlaces is the fixed-point precision salaries are stored and shown with.
const SalaryPlaces = 2

// Employee belongs to exactly one Department.
type Employee struct {
	ID           int64
	Name         string
	Email        string
	Position     string
	Salary       decimal.Decimal
	DepartmentID int64
	Department   *Department
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeFilter narrows employee listings. Zero values mean no filter.
type EmployeeFilter struct {
	DepartmentID int64
	Search       string
}
