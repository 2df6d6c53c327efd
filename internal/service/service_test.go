package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	repos       repository.Set
	revoked     repository.RevocationStore
	tokens      *auth.TokenManager
	auth        *AuthService
	departments *DepartmentService
	employees   *EmployeeService
	dashboard   *DashboardService
	recorded    *recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store, err := persistence.NewSQLite("file::memory:?_foreign_keys=on", nil)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, repository.AutoMigrate(store.DB))

	repos := repository.NewGormSet(store.DB)
	dispatcher := events.NewInMemoryDispatcher()
	rec := &recorder{}
	for _, et := range events.AllTypes {
		dispatcher.Subscribe(et, rec.handle)
	}

	revoked := repository.NewMemoryRevocationStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return &testEnv{
		repos:   repos,
		revoked: revoked,
		tokens:  tokens,
		auth: NewAuthService(AuthDependencies{
			UserRepo:   repos.Users,
			Revocation: revoked,
			Tokens:     tokens,
			BcryptCost: 4,
		}),
		departments: NewDepartmentService(repos.Departments, dispatcher, nil),
		employees:   NewEmployeeService(repos.Employees, repos.Departments, dispatcher, nil),
		dashboard:   NewDashboardService(repos.Snapshots),
		recorded:    rec,
	}
}

func ptr[T any](v T) *T { return &v }

// requireFieldErrors asserts err is a validation failure for exactly the
// given fields and returns its details.
func requireFieldErrors(t *testing.T, err error, fields ...string) map[string]any {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, apperrors.CodeValidationFailed, de.Code, de.Message)
	require.Len(t, de.Details, len(fields), "%v", de.Details)
	for _, f := range fields {
		require.Contains(t, de.Details, f)
	}
	return de.Details
}
