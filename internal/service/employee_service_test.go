package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

func validEmployee(deptID int64) EmployeeInput {
	return EmployeeInput{
		Name:         "john doe",
		Email:        "john@example.com",
		Position:     "Analyst",
		Salary:       ptr("4500.5"),
		DepartmentID: ptr(deptID),
	}
}

func TestEmployeeService_CreateNormalizes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	sales, err := env.departments.Create(ctx, DepartmentInput{Name: "Sales"})
	require.NoError(t, err)

	emp, err := env.employees.Create(ctx, validEmployee(sales.ID))
	require.NoError(t, err)
	assert.Equal(t, "John Doe", emp.Name)
	assert.Equal(t, "4500.50", emp.Salary.StringFixed(domain.SalaryPlaces))
	require.NotNil(t, emp.Department)
	assert.Equal(t, "Sales", emp.Department.Name)

	input := validEmployee(sales.ID)
	input.Name = "JANE   SMITH"
	input.Email = "jane@example.com"
	input.Salary = ptr("100.005")
	jane, err := env.employees.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Jane   Smith", jane.Name)
	assert.Equal(t, "100.01", jane.Salary.StringFixed(domain.SalaryPlaces))

	assert.Equal(t, []events.EventType{
		events.EventDepartmentCreated,
		events.EventEmployeeCreated,
		events.EventEmployeeCreated,
	}, env.recorded.types())
}

func TestEmployeeService_CollectsEveryFieldError(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.employees.Create(ctx, EmployeeInput{Email: "not-an-email", Salary: ptr("-1"), DepartmentID: ptr(int64(99))})
	details := requireFieldErrors(t, err, "name", "email", "position", "salary", "department_id")
	assert.Equal(t, []string{"The name field is required."}, details["name"])
	assert.Equal(t, []string{"The email field must be a valid email address."}, details["email"])
	assert.Equal(t, []string{"The salary field must be at least 0."}, details["salary"])
	assert.Equal(t, []string{"The selected department id is invalid."}, details["department_id"])
	assert.Equal(t, "The name field is required.", apperrors.ToDomainError(err).Message)

	_, err = env.employees.Create(ctx, EmployeeInput{Name: "x", Email: "x@example.com", Position: "x", Salary: ptr("abc")})
	details = requireFieldErrors(t, err, "salary", "department_id")
	assert.Equal(t, []string{"The salary field must be a number."}, details["salary"])
	assert.Equal(t, []string{"The department id field is required."}, details["department_id"])

	emps, err := env.employees.List(ctx, domain.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, emps, "nothing is written when validation fails")
	assert.Empty(t, env.recorded.types())
}

func TestEmployeeService_ZeroSalaryIsValid(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	hr, err := env.departments.Create(ctx, DepartmentInput{Name: "HR"})
	require.NoError(t, err)

	input := validEmployee(hr.ID)
	input.Salary = ptr("0")
	emp, err := env.employees.Create(ctx, input)
	require.NoError(t, err)
	assert.True(t, emp.Salary.IsZero())
}

func TestEmployeeService_EmailUniqueness(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	hr, err := env.departments.Create(ctx, DepartmentInput{Name: "HR"})
	require.NoError(t, err)

	first, err := env.employees.Create(ctx, validEmployee(hr.ID))
	require.NoError(t, err)

	_, err = env.employees.Create(ctx, validEmployee(hr.ID))
	details := requireFieldErrors(t, err, "email")
	assert.Equal(t, []string{"The email has already been taken."}, details["email"])

	input := validEmployee(hr.ID)
	input.Position = "Lead Analyst"
	updated, err := env.employees.Update(ctx, first.ID, input)
	require.NoError(t, err, "an employee keeps its own email")
	assert.Equal(t, "Lead Analyst", updated.Position)
}

func TestEmployeeService_UpdateMovesDepartment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	hr, err := env.departments.Create(ctx, DepartmentInput{Name: "HR"})
	require.NoError(t, err)
	eng, err := env.departments.Create(ctx, DepartmentInput{Name: "Engineering"})
	require.NoError(t, err)

	emp, err := env.employees.Create(ctx, validEmployee(hr.ID))
	require.NoError(t, err)

	input := validEmployee(eng.ID)
	input.Salary = ptr("7000")
	moved, err := env.employees.Update(ctx, emp.ID, input)
	require.NoError(t, err)
	assert.Equal(t, eng.ID, moved.DepartmentID)
	assert.Equal(t, "Engineering", moved.Department.Name)
	assert.Equal(t, "7000.00", moved.Salary.StringFixed(domain.SalaryPlaces))

	require.NoError(t, env.departments.Delete(ctx, hr.ID), "hr is empty after the move")

	_, err = env.employees.Update(ctx, 999, input)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestEmployeeService_ListFilters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	hr, err := env.departments.Create(ctx, DepartmentInput{Name: "HR"})
	require.NoError(t, err)
	eng, err := env.departments.Create(ctx, DepartmentInput{Name: "Engineering"})
	require.NoError(t, err)

	a := validEmployee(hr.ID)
	_, err = env.employees.Create(ctx, a)
	require.NoError(t, err)
	b := validEmployee(eng.ID)
	b.Name, b.Email = "grace hopper", "grace@example.com"
	grace, err := env.employees.Create(ctx, b)
	require.NoError(t, err)

	list, err := env.employees.List(ctx, domain.EmployeeFilter{DepartmentID: eng.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, grace.ID, list[0].ID)

	list, err = env.employees.List(ctx, domain.EmployeeFilter{Search: "hopper"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Grace Hopper", list[0].Name)
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	hr, err := env.departments.Create(ctx, DepartmentInput{Name: "HR"})
	require.NoError(t, err)
	emp, err := env.employees.Create(ctx, validEmployee(hr.ID))
	require.NoError(t, err)

	require.NoError(t, env.employees.Delete(ctx, emp.ID))
	_, err = env.employees.Get(ctx, emp.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	assert.True(t, apperrors.Is(env.employees.Delete(ctx, emp.ID), apperrors.CodeNotFound))
	assert.Contains(t, env.recorded.types(), events.EventEmployeeDeleted)
}

func TestEmployeeService_SalaryBounds(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	hr, err := env.departments.Create(ctx, DepartmentInput{Name: "HR"})
	require.NoError(t, err)

	const (
		tooLarge = "The salary field must not be greater than 9999999999.99."
		negative = "The salary field must be at least 0."
		notANum  = "The salary field must be a number."
	)
	rejected := []struct {
		name    string
		salary  string
		message string
	}{
		{"huge exponent", "1e50000000", tooLarge},
		{"eleven integer digits", "10000000000", tooLarge},
		{"rounds past the maximum", "9999999999.995", tooLarge},
		{"negative huge exponent", "-1e50000000", negative},
		{"negative below a cent", "-0.004", negative},
		{"overlong text", strings.Repeat("1", 65), notANum},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			input := validEmployee(hr.ID)
			input.Salary = ptr(tc.salary)

			start := time.Now()
			_, err := env.employees.Create(ctx, input)
			assert.Less(t, time.Since(start), 2*time.Second)

			details := requireFieldErrors(t, err, "salary")
			assert.Equal(t, []string{tc.message}, details["salary"])
		})
	}

	accepted := []struct {
		salary string
		want   string
	}{
		{"9999999999.99", "9999999999.99"},
		{"1.5e3", "1500.00"},
		{"1e-50000000", "0.00"},
		{"0e50000000", "0.00"},
		{"0.0049", "0.00"},
	}
	for i, tc := range accepted {
		input := validEmployee(hr.ID)
		input.Email = fmt.Sprintf("salary%d@example.com", i)
		input.Salary = ptr(tc.salary)

		start := time.Now()
		emp, err := env.employees.Create(ctx, input)
		require.NoError(t, err, tc.salary)
		assert.Less(t, time.Since(start), 2*time.Second)
		assert.Equal(t, tc.want, emp.Salary.StringFixed(domain.SalaryPlaces), tc.salary)
	}
}

func TestEmployeeService_NameLengthCountsNormalizedForm(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	hr, err := env.departments.Create(ctx, DepartmentInput{Name: "HR"})
	require.NoError(t, err)

	// 255 runes that title-case to "Ss Ss ..." of 383 runes.
	input := validEmployee(hr.ID)
	input.Name = strings.TrimSpace(strings.Repeat("ß ", 128))
	_, err = env.employees.Create(ctx, input)
	details := requireFieldErrors(t, err, "name")
	assert.Equal(t, []string{"The name field must not be greater than 255 characters."}, details["name"])

	input.Name = strings.Repeat("a", 255)
	emp, err := env.employees.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "A"+strings.Repeat("a", 254), emp.Name)
}
