package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/service"
)

// EmployeeRequest payload for create and update. Salary and DepartmentID are
// kept raw so a number and a numeric string are both accepted.
type EmployeeRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Position     string          `json:"position"`
	Salary       json.RawMessage `json:"salary"`
	DepartmentID json.RawMessage `json:"department_id"`
}

// Input converts the payload to service input.
func (r EmployeeRequest) Input() service.EmployeeInput {
	input := service.EmployeeInput{
		Name:     r.Name,
		Email:    r.Email,
		Position: r.Position,
	}
	if s, ok := rawScalar(r.Salary); ok {
		input.Salary = &s
	}
	if s, ok := rawScalar(r.DepartmentID); ok && s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			// unknown ids fail the existence check
			id = 0
		}
		input.DepartmentID = &id
	}
	return input
}

// rawScalar unwraps a JSON number or string. Absent and null report false.
func rawScalar(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	return string(raw), true
}

// EmployeeResponse is an employee. Department is set when it was loaded.
type EmployeeResponse struct {
	ID           int64              `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Position     string             `json:"position"`
	Salary       string             `json:"salary"`
	DepartmentID int64              `json:"department_id"`
	Department   *DepartmentSummary `json:"department,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// NewEmployeeResponse maps an employee; salary is rendered with two decimals.
func NewEmployeeResponse(e domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Position:     e.Position,
		Salary:       e.Salary.StringFixed(domain.SalaryPlaces),
		DepartmentID: e.DepartmentID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.Department != nil {
		resp.Department = &DepartmentSummary{
			ID:        e.Department.ID,
			Name:      e.Department.Name,
			CreatedAt: e.Department.CreatedAt,
			UpdatedAt: e.Department.UpdatedAt,
		}
	}
	return resp
}

// NewEmployeeResponses maps a listing.
func NewEmployeeResponses(emps []domain.Employee) []EmployeeResponse {
	return lo.Map(emps, func(e domain.Employee, _ int) EmployeeResponse {
		return NewEmployeeResponse(e)
	})
}
