package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const resourceEmployee = "employee"

// maxSalary is the largest value a NUMERIC(12,2) column holds.
var maxSalary = decimal.RequireFromString("9999999999.99")

const (
	maxSalaryIntegerDigits = 10
	maxSalaryTextLength    = 64
)

// EmployeeInput is the full set of writable employee fields. Salary is the
// textual number as received; nil pointers mean the field was absent.
type EmployeeInput struct {
	Name         string
	Email        string
	Position     string
	Salary       *string
	DepartmentID *int64
}

// EmployeeService manages employees and their department membership.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	events      publisher
}

// NewEmployeeService constructs the service.
func NewEmployeeService(employees repository.EmployeeRepository, departments repository.DepartmentRepository, dispatcher events.Dispatcher, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		employees:   employees,
		departments: departments,
		events:      newPublisher(dispatcher, logger),
	}
}

// List returns employees newest first, each with its department.
func (s *EmployeeService) List(ctx context.Context, filter domain.EmployeeFilter) ([]domain.Employee, error) {
	emps, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return emps, nil
}

// Get returns one employee with its department.
func (s *EmployeeService) Get(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, resourceEmployee, id)
	}
	return emp, nil
}

// Create validates and stores a new employee.
func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*domain.Employee, error) {
	emp, err := s.build(ctx, input, 0)
	if err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, emp); err != nil {
		return nil, s.writeError(err)
	}
	s.events.publish(ctx, events.EventEmployeeCreated, emp.ID, employeePayload(emp))
	return s.Get(ctx, emp.ID)
}

// Update replaces every field of the employee.
func (s *EmployeeService) Update(ctx context.Context, id int64, input EmployeeInput) (*domain.Employee, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	emp, err := s.build(ctx, input, id)
	if err != nil {
		return nil, err
	}
	emp.ID = id
	if err := s.employees.Update(ctx, emp); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundOr(err, resourceEmployee, id)
		}
		return nil, s.writeError(err)
	}
	s.events.publish(ctx, events.EventEmployeeUpdated, id, employeePayload(emp))
	return s.Get(ctx, id)
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	emp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.employees.Delete(ctx, id); err != nil {
		return notFoundOr(err, resourceEmployee, id)
	}
	s.events.publish(ctx, events.EventEmployeeDeleted, id, employeePayload(emp))
	return nil
}

// build validates input field by field and returns the normalized record.
// Nothing is written unless every field passes.
func (s *EmployeeService) build(ctx context.Context, input EmployeeInput, excludeID int64) (*domain.Employee, error) {
	var fields apperrors.FieldErrors
	name := normalizeName(input.Name)
	email := normalizeEmail(input.Email)

	checkRules(&fields,
		rule{field: "name", value: name, tags: "required,max=255"},
		rule{field: "email", value: email, tags: "required,email,max=255"},
	)
	if !fields.Has("email") {
		taken, err := s.employees.ExistsByEmail(ctx, email, excludeID)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if taken {
			fields.Add("email", takenMessage("email"))
		}
	}

	checkRules(&fields, rule{field: "position", value: strings.TrimSpace(input.Position), tags: "required,max=255"})

	salary := s.checkSalary(&fields, input.Salary)

	var departmentID int64
	if input.DepartmentID == nil {
		fields.Add("department_id", requiredMessage("department_id"))
	} else {
		departmentID = *input.DepartmentID
		exists, err := s.departments.Exists(ctx, departmentID)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if !exists {
			fields.Add("department_id", invalidSelectionMessage("department_id"))
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}
	return &domain.Employee{
		Name:         name,
		Email:        email,
		Position:     strings.TrimSpace(input.Position),
		Salary:       salary,
		DepartmentID: departmentID,
	}, nil
}

// checkSalary bounds the magnitude before rounding. Exponent notation such as
// "1e50000000" must never reach a rescale.
func (s *EmployeeService) checkSalary(fields *apperrors.FieldErrors, raw *string) decimal.Decimal {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		fields.Add("salary", requiredMessage("salary"))
		return decimal.Zero
	}
	text := strings.TrimSpace(*raw)
	salary, err := decimal.NewFromString(text)
	if err != nil || len(text) > maxSalaryTextLength {
		fields.Add("salary", fieldMessage("salary", "numeric", ""))
		return decimal.Zero
	}
	switch {
	case salary.IsNegative():
		fields.Add("salary", minMessage("salary", "0"))
		return decimal.Zero
	case salary.IsZero():
		return decimal.Zero
	}

	integerDigits := int64(salary.NumDigits()) + int64(salary.Exponent())
	switch {
	case integerDigits > maxSalaryIntegerDigits:
		fields.Add("salary", maxSalaryMessage())
		return decimal.Zero
	case integerDigits < -domain.SalaryPlaces:
		// below 0.001, rounds to zero
		return decimal.Zero
	}

	salary = normalizeSalary(salary)
	if salary.GreaterThan(maxSalary) {
		fields.Add("salary", maxSalaryMessage())
	}
	return salary
}

func maxSalaryMessage() string {
	return "The salary field must not be greater than " + maxSalary.StringFixed(domain.SalaryPlaces) + "."
}

func (s *EmployeeService) writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewFieldError("email", takenMessage("email"))
	case errors.Is(err, repository.ErrForeignKey):
		return apperrors.NewFieldError("department_id", invalidSelectionMessage("department_id"))
	}
	return apperrors.NewInternalError(err)
}

func employeePayload(emp *domain.Employee) events.EmployeePayload {
	return events.EmployeePayload{
		Name:         emp.Name,
		Email:        emp.Email,
		DepartmentID: emp.DepartmentID,
		Salary:       emp.Salary.StringFixed(domain.SalaryPlaces),
	}
}
