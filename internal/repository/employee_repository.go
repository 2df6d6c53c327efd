package repository

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

var employeeWithDepartmentColumns = []string{
	"e.id", "e.name", "e.email", "e.position", "e.salary::text", "e.department_id", "e.created_at", "e.updated_at",
	"d.id", "d.name", "d.created_at", "d.updated_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type employeeRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewEmployeeRepository returns a Postgres-backed implementation.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Salary is passed as text so the server parses it into NUMERIC exactly.
func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (name, email, position, salary, department_id)
        VALUES ($1, $2, $3, $4::text::numeric, $5)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		emp.Name,
		emp.Email,
		emp.Position,
		emp.Salary.StringFixed(domain.SalaryPlaces),
		emp.DepartmentID,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	return mapPgError(err)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, email=$2, position=$3, salary=$4::text::numeric, department_id=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		emp.Name,
		emp.Email,
		emp.Position,
		emp.Salary.StringFixed(domain.SalaryPlaces),
		emp.DepartmentID,
		emp.ID,
	).Scan(&emp.CreatedAt, &emp.UpdatedAt)
	return mapPgError(err)
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM employees WHERE id=$1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query, args, err := r.selectWithDepartment().Where(sq.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	emp, err := scanEmployeeWithDepartment(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapPgError(err)
	}
	return emp, nil
}

// List returns employees newest first.
func (r *employeeRepository) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	query, args, err := r.listQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	result := []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployeeWithDepartment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *emp)
	}
	return result, rows.Err()
}

func (r *employeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email=$1 AND id<>$2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, mapPgError(err)
}

func (r *employeeRepository) listQuery(filter domain.EmployeeFilter) sq.SelectBuilder {
	builder := r.selectWithDepartment().OrderBy("e.created_at DESC", "e.id DESC")
	if filter.DepartmentID > 0 {
		builder = builder.Where(sq.Eq{"e.department_id": filter.DepartmentID})
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		builder = builder.Where(sq.Or{
			sq.Like{"LOWER(e.name)": like},
			sq.Like{"LOWER(e.email)": like},
			sq.Like{"LOWER(e.position)": like},
			sq.Like{"LOWER(d.name)": like},
		})
	}
	return builder
}

func (r *employeeRepository) selectWithDepartment() sq.SelectBuilder {
	return r.sb.Select(employeeWithDepartmentColumns...).
		From("employees e").
		Join("departments d ON d.id = e.department_id")
}

func scanEmployeeWithDepartment(row interface{ Scan(dest ...any) error }) (*domain.Employee, error) {
	var (
		emp    domain.Employee
		dept   domain.Department
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
		&dept.ID,
		&dept.Name,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := emp.Salary.Scan(salary); err != nil {
		return nil, err
	}
	emp.Department = &dept
	return &emp, nil
}
