package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	eng, err := env.departments.Create(ctx, DepartmentInput{Name: "Engineering"})
	require.NoError(t, err)
	_, err = env.departments.Create(ctx, DepartmentInput{Name: "Legal"})
	require.NoError(t, err)

	for i, salary := range []string{"1000", "2000", "3000"} {
		input := validEmployee(eng.ID)
		input.Email = string(rune('a'+i)) + "@example.com"
		input.Salary = ptr(salary)
		_, err := env.employees.Create(ctx, input)
		require.NoError(t, err)
	}

	summary, err := env.dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.TotalEmployees)
	assert.Equal(t, summary.TotalEmployees, summary.CountSum())

	counts, err := json.Marshal(summary.EmployeesByDepartment())
	require.NoError(t, err)
	assert.JSONEq(t, `{"Engineering":3,"Legal":0}`, string(counts))

	averages, err := json.Marshal(summary.AverageSalaryByDepartment())
	require.NoError(t, err)
	assert.Equal(t, `{"Engineering":"2000.00","Legal":"0.00"}`, string(averages))
}
