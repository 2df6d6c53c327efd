package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/employee-service/internal/domain"
)

type snapshotRepository struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository returns a Postgres-backed implementation.
func NewSnapshotRepository(pool *pgxpool.Pool) SnapshotRepository {
	return &snapshotRepository{pool: pool}
}

// LoadSnapshot reads inside a read-only repeatable-read transaction so the
// department listing and the employee count observe the same state.
func (r *snapshotRepository) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	opts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := pgx.BeginTxFunc(ctx, r.pool, opts, func(tx pgx.Tx) error {
		depts, err := listDepartmentsWithEmployees(ctx, tx)
		if err != nil {
			return err
		}
		snapshot.Departments = depts
		return tx.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&snapshot.TotalEmployees)
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return &snapshot, nil
}

// NewPostgresSet wires every Postgres repository onto one pool.
func NewPostgresSet(pool *pgxpool.Pool) Set {
	return Set{
		Departments: NewDepartmentRepository(pool),
		Employees:   NewEmployeeRepository(pool),
		Users:       NewUserRepository(pool),
		Snapshots:   NewSnapshotRepository(pool),
	}
}
