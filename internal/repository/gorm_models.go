package repository

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spec-kit/employee-service/internal/domain"
)

type departmentModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null;uniqueIndex:departments_name_key"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (departmentModel) TableName() string { return "departments" }

type employeeModel struct {
	ID           int64            `gorm:"primaryKey;autoIncrement"`
	Name         string           `gorm:"size:255;not null"`
	Email        string           `gorm:"size:255;not null;uniqueIndex:employees_email_key"`
	Position     string           `gorm:"size:255;not null"`
	Salary       decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	DepartmentID int64            `gorm:"not null;index"`
	Department   *departmentModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt    time.Time        `gorm:"index"`
	UpdatedAt    time.Time
}

func (employeeModel) TableName() string { return "employees" }

type userModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex:users_email_key"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

// AutoMigrate creates or updates the gorm store schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&departmentModel{}, &employeeModel{}, &userModel{})
}

// NewGormSet wires every gorm repository onto one database handle.
func NewGormSet(db *gorm.DB) Set {
	return Set{
		Departments: NewGormDepartmentRepository(db),
		Employees:   NewGormEmployeeRepository(db),
		Users:       NewGormUserRepository(db),
		Snapshots:   NewGormSnapshotRepository(db),
	}
}

func mapGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	}
	return err
}

func (m *departmentModel) toDomain() domain.Department {
	return domain.Department{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *employeeModel) toDomain() domain.Employee {
	emp := domain.Employee{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Position:     m.Position,
		Salary:       m.Salary.Round(domain.SalaryPlaces),
		DepartmentID: m.DepartmentID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Department != nil {
		dept := m.Department.toDomain()
		emp.Department = &dept
	}
	return emp
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
