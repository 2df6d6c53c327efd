package dto

import "github.com/spec-kit/employee-service/internal/stats"

// StatsResponse is the dashboard payload. The maps keep department fetch
// order when encoded.
type StatsResponse struct {
	TotalEmployees            int64                     `json:"total_employees"`
	EmployeesByDepartment     *stats.OrderedMap[int]    `json:"employees_by_department"`
	AverageSalaryByDepartment *stats.OrderedMap[string] `json:"average_salary_by_department"`
}

// NewStatsResponse projects the id-keyed summary onto department names.
func NewStatsResponse(s stats.Summary) StatsResponse {
	return StatsResponse{
		TotalEmployees:            s.TotalEmployees,
		EmployeesByDepartment:     s.EmployeesByDepartment(),
		AverageSalaryByDepartment: s.AverageSalaryByDepartment(),
	}
}
