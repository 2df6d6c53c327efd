package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/employee-service/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository returns a Postgres-backed implementation.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (name)
        VALUES ($1)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, dept.Name).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
	return mapPgError(err)
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments SET name=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, dept.Name, dept.ID).Scan(&dept.CreatedAt, &dept.UpdatedAt)
	return mapPgError(err)
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *departmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM departments WHERE id=$1`
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&dept.ID,
		&dept.Name,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}

	depts := []domain.Department{dept}
	if err := attachEmployees(ctx, r.pool, depts); err != nil {
		return nil, err
	}
	return &depts[0], nil
}

func (r *departmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	return listDepartmentsWithEmployees(ctx, r.pool)
}

func (r *departmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departments WHERE id=$1)`, id).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *departmentRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM departments WHERE name=$1 AND id<>$2)`,
		name, excludeID,
	).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *departmentRepository) CountEmployees(ctx context.Context, id int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department_id=$1`, id).Scan(&count)
	return count, mapPgError(err)
}

// listDepartmentsWithEmployees loads every department in id order and resolves
// their employees with one extra query.
func listDepartmentsWithEmployees(ctx context.Context, q querier) ([]domain.Department, error) {
	const query = `
        SELECT id, name, created_at, updated_at
        FROM departments ORDER BY id`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	result := []domain.Department{}
	for rows.Next() {
		var dept domain.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.CreatedAt, &dept.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, dept)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachEmployees(ctx, q, result); err != nil {
		return nil, err
	}
	return result, nil
}

func attachEmployees(ctx context.Context, q querier, depts []domain.Department) error {
	if len(depts) == 0 {
		return nil
	}
	ids := make([]int64, len(depts))
	index := make(map[int64]int, len(depts))
	for i := range depts {
		ids[i] = depts[i].ID
		index[depts[i].ID] = i
		depts[i].Employees = []domain.Employee{}
	}

	const query = `
        SELECT id, name, email, position, salary::text, department_id, created_at, updated_at
        FROM employees WHERE department_id = ANY($1)
        ORDER BY id`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return mapPgError(err)
	}
	defer rows.Close()

	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return err
		}
		i := index[emp.DepartmentID]
		depts[i].Employees = append(depts[i].Employees, *emp)
	}
	return rows.Err()
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		emp    domain.Employee
		salary string
	)
	if err := row.Scan(
		&emp.ID,
		&emp.Name,
		&emp.Email,
		&emp.Position,
		&salary,
		&emp.DepartmentID,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(salary)
	if err != nil {
		return nil, err
	}
	emp.Salary = parsed
	return &emp, nil
}
