package dto

import (
	"time"

	"github.com/samber/lo"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DepartmentRequest payload for create and update.
type DepartmentRequest struct {
	Name string `json:"name"`
}

// DepartmentResponse is a department with its employees.
type DepartmentResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Employees []EmployeeResponse `json:"employees"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// DepartmentSummary is the department embedded in an employee.
type DepartmentSummary struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDepartmentResponse maps a department and its loaded employees.
func NewDepartmentResponse(d domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:   d.ID,
		Name: d.Name,
		Employees: lo.Map(d.Employees, func(e domain.Employee, _ int) EmployeeResponse {
			return NewEmployeeResponse(e)
		}),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// NewDepartmentResponses maps a listing.
func NewDepartmentResponses(depts []domain.Department) []DepartmentResponse {
	return lo.Map(depts, func(d domain.Department, _ int) DepartmentResponse {
		return NewDepartmentResponse(d)
	})
}
