package dashboard

import (
	"context"
	"time"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

type Service struct {
	repo domain.DashboardRepository
	// now is captured once per request; every today/yesterday boundary in
	// the snapshot derives from that single instant.
	now func() time.Time
}

var _ domain.DashboardUsecase = (*Service)(nil)

func NewService(repo domain.DashboardRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Snapshot(ctx context.Context) (domain.DashboardSnapshot, error) {
	return s.repo.Snapshot(ctx, s.now())
}
