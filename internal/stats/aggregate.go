// Package stats reduces an organization snapshot into dashboard figures.
package stats

import (
	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/domain"
)

// DepartmentStat holds the figures of one department, keyed by its id.
type DepartmentStat struct {
	ID            int64
	Name          string
	EmployeeCount int
	AverageSalary decimal.Decimal
}

// Summary is the aggregate view of a snapshot. Departments keeps the order in
// which the snapshot listed them.
type Summary struct {
	TotalEmployees int64
	Departments    []DepartmentStat
}

// Aggregate computes per-department head counts and average salaries in a
// single pass. A department without employees averages to zero.
func Aggregate(snapshot domain.Snapshot) Summary {
	summary := Summary{
		TotalEmployees: snapshot.TotalEmployees,
		Departments:    make([]DepartmentStat, 0, len(snapshot.Departments)),
	}
	index := make(map[int64]int, len(snapshot.Departments))

	for _, dept := range snapshot.Departments {
		sum := decimal.Zero
		for _, emp := range dept.Employees {
			sum = sum.Add(emp.Salary)
		}
		stat := DepartmentStat{
			ID:            dept.ID,
			Name:          dept.Name,
			EmployeeCount: len(dept.Employees),
			AverageSalary: decimal.Zero,
		}
		if stat.EmployeeCount > 0 {
			stat.AverageSalary = sum.Div(decimal.NewFromInt(int64(stat.EmployeeCount)))
		}

		// A department listed twice is folded into its first position.
		if i, seen := index[dept.ID]; seen {
			summary.Departments[i] = stat
			continue
		}
		index[dept.ID] = len(summary.Departments)
		summary.Departments = append(summary.Departments, stat)
	}
	return summary
}

// EmployeesByDepartment projects head counts onto department names.
func (s Summary) EmployeesByDepartment() *OrderedMap[int] {
	out := NewOrderedMap[int](len(s.Departments))
	for _, d := range s.Departments {
		out.Set(d.Name, d.EmployeeCount)
	}
	return out
}

// AverageSalaryByDepartment projects averages onto department names as
// two-decimal strings.
func (s Summary) AverageSalaryByDepartment() *OrderedMap[string] {
	out := NewOrderedMap[string](len(s.Departments))
	for _, d := range s.Departments {
		out.Set(d.Name, FormatAmount(d.AverageSalary))
	}
	return out
}

// CountSum returns the sum of all per-department head counts.
func (s Summary) CountSum() int64 {
	var total int64
	for _, d := range s.Departments {
		total += int64(d.EmployeeCount)
	}
	return total
}

// FormatAmount renders a money amount with two decimals, rounding half away
// from zero.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(domain.SalaryPlaces)
}
