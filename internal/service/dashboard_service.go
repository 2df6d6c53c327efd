package service

import (
	"context"

	"github.com/spec-kit/employee-service/internal/repository"
	"github.com/spec-kit/employee-service/internal/stats"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// DashboardService computes the headline statistics.
type DashboardService struct {
	snapshots repository.SnapshotRepository
}

// NewDashboardService constructs the service.
func NewDashboardService(snapshots repository.SnapshotRepository) *DashboardService {
	return &DashboardService{snapshots: snapshots}
}

// Stats aggregates one consistent snapshot of the store.
func (s *DashboardService) Stats(ctx context.Context) (stats.Summary, error) {
	snapshot, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		return stats.Summary{}, apperrors.NewInternalError(err)
	}
	return stats.Aggregate(*snapshot), nil
}
