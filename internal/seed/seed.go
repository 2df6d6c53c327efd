// Package seed loads demo data: an admin account and five departments with
// five employees each.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sethvargo/go-password/password"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/service"
)

// DefaultAdminEmail is the login created by the seeder.
const DefaultAdminEmail = "admin@example.com"

// DefaultDepartments are created in this order.
var DefaultDepartments = []string{"HR", "Engineering", "Sales", "Marketing", "Finance"}

var (
	firstNames = []string{"amelia", "benjamin", "chloe", "daniel", "emma", "felix", "grace", "henry", "isla", "jack"}
	lastNames  = []string{"anderson", "brooks", "carter", "diaz", "evans", "foster", "garcia", "hughes", "ito", "jensen"}
	positions  = map[string][]string{
		"HR":          {"HR Manager", "Recruiter", "HR Generalist", "Payroll Specialist", "Training Coordinator"},
		"Engineering": {"Engineering Manager", "Senior Engineer", "Backend Engineer", "Frontend Engineer", "QA Engineer"},
		"Sales":       {"Sales Director", "Account Executive", "Sales Representative", "Sales Analyst", "Account Manager"},
		"Marketing":   {"Marketing Manager", "Content Strategist", "SEO Specialist", "Brand Designer", "Marketing Analyst"},
		"Finance":     {"Finance Manager", "Accountant", "Financial Analyst", "Auditor", "Controller"},
	}
)

// Options tune a seeding run.
type Options struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	// EmployeesPerDepartment defaults to 5.
	EmployeesPerDepartment int
}

// Result reports what a run created. AdminPassword is only set when the
// account was created, so the caller can show it once.
type Result struct {
	AdminEmail         string
	AdminCreated       bool
	AdminPassword      string
	DepartmentsCreated []string
	EmployeesCreated   int
}

// Seeder writes demo data through the services so validation and events apply.
type Seeder struct {
	Auth        *service.AuthService
	Departments *service.DepartmentService
	Employees   *service.EmployeeService
	Users       repository.UserRepository
	DeptRepo    repository.DepartmentRepository
	Logger      *zap.Logger
}

// Run seeds the store. Existing admin and departments are left untouched, so
// running twice creates nothing new.
func (s *Seeder) Run(ctx context.Context, opts Options) (*Result, error) {
	opts = withDefaults(opts)
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	result := &Result{AdminEmail: opts.AdminEmail}
	created, pw, err := s.ensureAdmin(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.AdminCreated, result.AdminPassword = created, pw

	for deptIndex, name := range DefaultDepartments {
		exists, err := s.DeptRepo.ExistsByName(ctx, name, 0)
		if err != nil {
			return nil, err
		}
		if exists {
			logger.Info("department already seeded", zap.String("department", name))
			continue
		}
		dept, err := s.Departments.Create(ctx, service.DepartmentInput{Name: name})
		if err != nil {
			return nil, fmt.Errorf("create department %s: %w", name, err)
		}
		result.DepartmentsCreated = append(result.DepartmentsCreated, name)

		for _, input := range employeesFor(name, deptIndex, dept.ID, opts.EmployeesPerDepartment) {
			if _, err := s.Employees.Create(ctx, input); err != nil {
				return nil, fmt.Errorf("create employee %s: %w", input.Email, err)
			}
			result.EmployeesCreated++
		}
	}

	logger.Info("seed complete",
		zap.Bool("admin_created", result.AdminCreated),
		zap.Strings("departments", result.DepartmentsCreated),
		zap.Int("employees", result.EmployeesCreated))
	return result, nil
}

func (s *Seeder) ensureAdmin(ctx context.Context, opts Options) (bool, string, error) {
	_, err := s.Users.GetByEmail(ctx, opts.AdminEmail)
	if err == nil {
		return false, "", nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, "", err
	}

	pw := opts.AdminPassword
	if pw == "" {
		if pw, err = GeneratePassword(); err != nil {
			return false, "", err
		}
	}
	if _, err := s.Auth.CreateUser(ctx, service.CreateUserInput{
		Name:     opts.AdminName,
		Email:    opts.AdminEmail,
		Password: pw,
	}); err != nil {
		return false, "", fmt.Errorf("create admin: %w", err)
	}
	return true, pw, nil
}

// GeneratePassword returns a random 16 character password with digits.
func GeneratePassword() (string, error) {
	return password.Generate(16, 4, 0, false, true)
}

func withDefaults(opts Options) Options {
	if opts.AdminName == "" {
		opts.AdminName = "Admin User"
	}
	if opts.AdminEmail == "" {
		opts.AdminEmail = DefaultAdminEmail
	}
	if opts.EmployeesPerDepartment <= 0 {
		opts.EmployeesPerDepartment = 5
	}
	return opts
}

// employeesFor builds a department's staff. Salaries are distinct within and
// across departments.
func employeesFor(dept string, deptIndex int, deptID int64, n int) []service.EmployeeInput {
	titles := positions[dept]
	slug := strings.ToLower(dept)
	return lo.Times(n, func(i int) service.EmployeeInput {
		first := firstNames[(deptIndex*3+i)%len(firstNames)]
		last := lastNames[(deptIndex+i*7)%len(lastNames)]
		salary := decimal.NewFromInt(int64(3000 + deptIndex*1000)).
			Add(decimal.NewFromInt(int64(n - i)).Mul(decimal.RequireFromString("437.25"))).
			StringFixed(2)
		position := "Staff"
		if len(titles) > 0 {
			position = titles[i%len(titles)]
		}
		return service.EmployeeInput{
			Name:         first + " " + last,
			Email:        fmt.Sprintf("%s.%s.%d@%s.example.com", first, last, i+1, slug),
			Position:     position,
			Salary:       &salary,
			DepartmentID: &deptID,
		}
	})
}
