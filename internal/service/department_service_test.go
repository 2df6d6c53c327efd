package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/events"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

func TestDepartmentService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	hr, err := env.departments.Create(ctx, DepartmentInput{Name: " HR "})
	require.NoError(t, err)
	assert.Equal(t, "HR", hr.Name)
	assert.NotNil(t, hr.Employees)

	_, err = env.departments.Create(ctx, DepartmentInput{Name: "HR"})
	details := requireFieldErrors(t, err, "name")
	assert.Equal(t, []string{"The name has already been taken."}, details["name"])

	updated, err := env.departments.Update(ctx, hr.ID, DepartmentInput{Name: "HR"})
	require.NoError(t, err, "a department keeps its own name")
	assert.Equal(t, "HR", updated.Name)

	updated, err = env.departments.Update(ctx, hr.ID, DepartmentInput{Name: "People"})
	require.NoError(t, err)
	assert.Equal(t, "People", updated.Name)

	assert.Equal(t, []events.EventType{
		events.EventDepartmentCreated,
		events.EventDepartmentUpdated,
		events.EventDepartmentUpdated,
	}, env.recorded.types())
}

func TestDepartmentService_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.departments.Create(ctx, DepartmentInput{})
	details := requireFieldErrors(t, err, "name")
	assert.Equal(t, []string{"The name field is required."}, details["name"])
	assert.Equal(t, "The name field is required.", apperrors.ToDomainError(err).Message)

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}
	_, err = env.departments.Create(ctx, DepartmentInput{Name: string(long)})
	details = requireFieldErrors(t, err, "name")
	assert.Equal(t, []string{"The name field must not be greater than 255 characters."}, details["name"])

	_, err = env.departments.Update(ctx, 404, DepartmentInput{})
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound), "missing record wins over validation")
	assert.Empty(t, env.recorded.types())
}

func TestDepartmentService_DeleteGuardsEmployees(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	eng, err := env.departments.Create(ctx, DepartmentInput{Name: "Engineering"})
	require.NoError(t, err)
	emp, err := env.employees.Create(ctx, EmployeeInput{
		Name: "ada lovelace", Email: "ada@example.com", Position: "Engineer",
		Salary: ptr("5000"), DepartmentID: ptr(eng.ID),
	})
	require.NoError(t, err)

	err = env.departments.Delete(ctx, eng.ID)
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeReferentialConflict, de.Code)
	assert.Equal(t, 409, de.HTTPStatus)
	assert.Equal(t, int64(1), de.Details["employee_count"])

	got, err := env.departments.Get(ctx, eng.ID)
	require.NoError(t, err)
	assert.Len(t, got.Employees, 1)

	require.NoError(t, env.employees.Delete(ctx, emp.ID))
	require.NoError(t, env.departments.Delete(ctx, eng.ID))

	_, err = env.departments.Get(ctx, eng.ID)
	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
	assert.True(t, apperrors.Is(env.departments.Delete(ctx, eng.ID), apperrors.CodeNotFound))
}
