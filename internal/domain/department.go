package domain

import "time"

// Department is an organizational unit. Employees is derived from the
// employees table and only populated when the department is loaded with its
// members.
type Department struct {
	ID        int64
	Name      string
	Employees []Employee
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeCount returns the number of loaded employees.
func (d *Department) EmployeeCount() int {
	return len(d.Employees)
}
