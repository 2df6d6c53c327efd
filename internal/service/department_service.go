package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const resourceDepartment = "department"

// DepartmentInput is the full set of writable department fields.
type DepartmentInput struct {
	Name string
}

// DepartmentService manages departments and guards their deletion.
type DepartmentService struct {
	departments repository.DepartmentRepository
	events      publisher
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{departments: departments, events: newPublisher(dispatcher, logger)}
}

// List returns every department with its employees, in id order.
func (s *DepartmentService) List(ctx context.Context) ([]domain.Department, error) {
	depts, err := s.departments.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return depts, nil
}

// Get returns one department with its employees.
func (s *DepartmentService) Get(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, resourceDepartment, id)
	}
	return dept, nil
}

// Create validates and stores a new department.
func (s *DepartmentService) Create(ctx context.Context, input DepartmentInput) (*domain.Department, error) {
	name := strings.TrimSpace(input.Name)
	if err := s.validate(ctx, name, 0); err != nil {
		return nil, err
	}

	dept := &domain.Department{Name: name, Employees: []domain.Employee{}}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, s.writeError(err)
	}
	s.events.publish(ctx, events.EventDepartmentCreated, dept.ID, events.DepartmentPayload{Name: dept.Name})
	return dept, nil
}

// Update replaces the department's fields.
func (s *DepartmentService) Update(ctx context.Context, id int64, input DepartmentInput) (*domain.Department, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if err := s.validate(ctx, name, id); err != nil {
		return nil, err
	}

	if err := s.departments.Update(ctx, &domain.Department{ID: id, Name: name}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundOr(err, resourceDepartment, id)
		}
		return nil, s.writeError(err)
	}
	s.events.publish(ctx, events.EventDepartmentUpdated, id, events.DepartmentPayload{Name: name})
	return s.Get(ctx, id)
}

// Delete removes a department that has no employees.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	dept, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.departments.CountEmployees(ctx, id)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if count > 0 {
		return referentialConflict(dept.Name, count)
	}

	if err := s.departments.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return notFoundOr(err, resourceDepartment, id)
		case errors.Is(err, repository.ErrForeignKey):
			// an employee was added between the count and the delete
			return referentialConflict(dept.Name, 1)
		}
		return apperrors.NewInternalError(err)
	}
	s.events.publish(ctx, events.EventDepartmentDeleted, id, events.DepartmentPayload{Name: dept.Name})
	return nil
}

func (s *DepartmentService) validate(ctx context.Context, name string, excludeID int64) error {
	var fields apperrors.FieldErrors
	checkRules(&fields, rule{field: "name", value: name, tags: "required,max=255"})
	if !fields.Has("name") {
		taken, err := s.departments.ExistsByName(ctx, name, excludeID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if taken {
			fields.Add("name", takenMessage("name"))
		}
	}
	return fields.Err()
}

func (s *DepartmentService) writeError(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewFieldError("name", takenMessage("name"))
	}
	return apperrors.NewInternalError(err)
}

func referentialConflict(name string, employees int64) error {
	return apperrors.NewReferentialConflict(
		"Cannot delete department \""+name+"\" because it still has employees.",
		map[string]any{"employee_count": employees},
	)
}
