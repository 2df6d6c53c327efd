package repository

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
)

// Sentinel errors returned by every store implementation.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate value violates unique constraint")
	ErrForeignKey = errors.New("foreign key constraint violated")
)

// DepartmentRepository manages department persistence. Reads always load the
// department's employees.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	List(ctx context.Context) ([]domain.Department, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	CountEmployees(ctx context.Context, id int64) (int64, error)
}

// EmployeeRepository manages employee persistence. Reads always load the
// employee's department.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error)
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

// UserRepository defines persistence access for API operators.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SnapshotRepository reads departments with employees and the global employee
// count in one consistent view.
type SnapshotRepository interface {
	LoadSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

// RevocationStore remembers revoked token ids until they would have expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Set bundles the record store repositories of one backend.
type Set struct {
	Departments DepartmentRepository
	Employees   EmployeeRepository
	Users       UserRepository
	Snapshots   SnapshotRepository
}
