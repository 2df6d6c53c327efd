package repository

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
)

func TestMapPgError(t *testing.T) {
	other := errors.New("connection reset")
	serialization := &pgconn.PgError{Code: "40001"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "employees_email_key"}, ErrDuplicate},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503", ConstraintName: "employees_department_id_fkey"}, ErrForeignKey},
		{"other sqlstate", serialization, serialization},
		{"driver error", other, other},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := mapPgError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	assert.Contains(t, mapPgError(&pgconn.PgError{Code: "23505", ConstraintName: "departments_name_key"}).Error(), "departments_name_key")
}

func TestEmployeeListQuery(t *testing.T) {
	repo := NewEmployeeRepository(nil).(*employeeRepository)
	columns := strings.Join(employeeWithDepartmentColumns, ", ")
	base := "SELECT " + columns + " FROM employees e JOIN departments d ON d.id = e.department_id"

	query, args, err := repo.listQuery(domain.EmployeeFilter{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, base+" ORDER BY e.created_at DESC, e.id DESC", query)
	assert.Empty(t, args)

	query, args, err = repo.listQuery(domain.EmployeeFilter{DepartmentID: 3, Search: "  50%_OFF\\ "}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, base+
		" WHERE e.department_id = $1"+
		" AND (LOWER(e.name) LIKE $2 OR LOWER(e.email) LIKE $3 OR LOWER(e.position) LIKE $4 OR LOWER(d.name) LIKE $5)"+
		" ORDER BY e.created_at DESC, e.id DESC", query)

	like := `%50\%\_off\\%`
	assert.Equal(t, []any{int64(3), like, like, like, like}, args)
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func TestScanEmployeeWithDepartment(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	row := fakeRow{values: []any{
		int64(11), "Ada Lovelace", "ada@example.com", "Engineer", "4500.50", int64(2), created, created,
		int64(2), "Engineering", created, created,
	}}

	emp, err := scanEmployeeWithDepartment(row)
	require.NoError(t, err)
	assert.Equal(t, int64(11), emp.ID)
	assert.Equal(t, "4500.50", emp.Salary.StringFixed(domain.SalaryPlaces))
	require.NotNil(t, emp.Department)
	assert.Equal(t, "Engineering", emp.Department.Name)
	assert.Equal(t, emp.DepartmentID, emp.Department.ID)

	row.values[4] = "not-a-number"
	_, err = scanEmployeeWithDepartment(row)
	assert.Error(t, err)

	_, err = scanEmployeeWithDepartment(fakeRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, mapPgError(err), ErrNotFound)
}
