package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/spec-kit/employee-service/internal/domain"
)

type gormDepartmentRepository struct {
	db *gorm.DB
}

// NewGormDepartmentRepository returns a gorm-backed implementation.
func NewGormDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &gormDepartmentRepository{db: db}
}

func (r *gormDepartmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	m := departmentModel{Name: dept.Name}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapGormError(err)
	}
	dept.ID, dept.CreatedAt, dept.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *gormDepartmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&departmentModel{}).Where("id = ?", dept.ID).
		Updates(map[string]any{"name": dept.Name, "updated_at": time.Now()})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	var m departmentModel
	if err := db.First(&m, dept.ID).Error; err != nil {
		return mapGormError(err)
	}
	dept.CreatedAt, dept.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *gormDepartmentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&departmentModel{}, id)
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormDepartmentRepository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	db := r.db.WithContext(ctx)
	var m departmentModel
	if err := db.First(&m, id).Error; err != nil {
		return nil, mapGormError(err)
	}
	depts := []domain.Department{m.toDomain()}
	if err := gormAttachEmployees(db, depts); err != nil {
		return nil, err
	}
	return &depts[0], nil
}

func (r *gormDepartmentRepository) List(ctx context.Context) ([]domain.Department, error) {
	return gormListDepartments(r.db.WithContext(ctx))
}

func (r *gormDepartmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&departmentModel{}).Where("id = ?", id).Count(&n).Error
	return n > 0, mapGormError(err)
}

func (r *gormDepartmentRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&departmentModel{}).
		Where("name = ? AND id <> ?", name, excludeID).Count(&n).Error
	return n > 0, mapGormError(err)
}

func (r *gormDepartmentRepository) CountEmployees(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&employeeModel{}).Where("department_id = ?", id).Count(&n).Error
	return n, mapGormError(err)
}

func gormListDepartments(db *gorm.DB) ([]domain.Department, error) {
	var models []departmentModel
	if err := db.Order("id").Find(&models).Error; err != nil {
		return nil, mapGormError(err)
	}
	depts := make([]domain.Department, len(models))
	for i := range models {
		depts[i] = models[i].toDomain()
	}
	if err := gormAttachEmployees(db, depts); err != nil {
		return nil, err
	}
	return depts, nil
}

func gormAttachEmployees(db *gorm.DB, depts []domain.Department) error {
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

	var models []employeeModel
	if err := db.Where("department_id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return mapGormError(err)
	}
	for i := range models {
		d := index[models[i].DepartmentID]
		depts[d].Employees = append(depts[d].Employees, models[i].toDomain())
	}
	return nil
}

type gormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository returns a gorm-backed implementation.
func NewGormEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &gormEmployeeRepository{db: db}
}

func (r *gormEmployeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	m := employeeModel{
		Name:         emp.Name,
		Email:        emp.Email,
		Position:     emp.Position,
		Salary:       emp.Salary,
		DepartmentID: emp.DepartmentID,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapGormError(err)
	}
	emp.ID, emp.CreatedAt, emp.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *gormEmployeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&employeeModel{}).Where("id = ?", emp.ID).Updates(map[string]any{
		"name":          emp.Name,
		"email":         emp.Email,
		"position":      emp.Position,
		"salary":        emp.Salary,
		"department_id": emp.DepartmentID,
		"updated_at":    time.Now(),
	})
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	var m employeeModel
	if err := db.First(&m, emp.ID).Error; err != nil {
		return mapGormError(err)
	}
	emp.CreatedAt, emp.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *gormEmployeeRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&employeeModel{}, id)
	if res.Error != nil {
		return mapGormError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormEmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var m employeeModel
	if err := r.db.WithContext(ctx).Preload("Department").First(&m, id).Error; err != nil {
		return nil, mapGormError(err)
	}
	emp := m.toDomain()
	return &emp, nil
}

// List returns employees newest first.
func (r *gormEmployeeRepository) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	q := r.db.WithContext(ctx).Preload("Department").Order("created_at DESC").Order("id DESC")
	if filter.DepartmentID > 0 {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		q = q.Where(`(LOWER(name) LIKE @like ESCAPE '\' OR LOWER(email) LIKE @like ESCAPE '\' OR LOWER(position) LIKE @like ESCAPE '\'
			OR department_id IN (SELECT id FROM departments WHERE LOWER(name) LIKE @like ESCAPE '\'))`, sql.Named("like", like))
	}

	var models []employeeModel
	if err := q.Find(&models).Error; err != nil {
		return nil, mapGormError(err)
	}
	result := make([]domain.Employee, len(models))
	for i := range models {
		result[i] = models[i].toDomain()
	}
	return result, nil
}

func (r *gormEmployeeRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&employeeModel{}).
		Where("email = ? AND id <> ?", email, excludeID).Count(&n).Error
	return n > 0, mapGormError(err)
}

type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository returns a gorm-backed implementation.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	m := userModel{Name: user.Name, Email: user.Email, PasswordHash: user.PasswordHash}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return mapGormError(err)
	}
	user.ID, user.CreatedAt, user.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *gormUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapGormError(err)
	}
	return m.toDomain(), nil
}

func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		return nil, mapGormError(err)
	}
	return m.toDomain(), nil
}

type gormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository returns a gorm-backed implementation.
func NewGormSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &gormSnapshotRepository{db: db}
}

func (r *gormSnapshotRepository) LoadSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		depts, err := gormListDepartments(tx)
		if err != nil {
			return err
		}
		snapshot.Departments = depts
		return tx.Model(&employeeModel{}).Count(&snapshot.TotalEmployees).Error
	})
	if err != nil {
		return nil, mapGormError(err)
	}
	return &snapshot, nil
}
