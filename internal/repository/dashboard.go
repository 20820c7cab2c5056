package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

// dashboardRepository 协调层, reads through the cache and falls back to the
// database. A broken cache backend degrades to recomputation, never to an
// error for the caller.
type dashboardRepository struct {
	db    domain.DashboardDBRepository
	cache domain.DashboardCache
	group singleflight.Group
}

var _ domain.DashboardRepository = (*dashboardRepository)(nil)

func NewDashboardRepository(db domain.DashboardDBRepository, cache domain.DashboardCache) *dashboardRepository {
	return &dashboardRepository{
		db:    db,
		cache: cache,
	}
}

func (r *dashboardRepository) Snapshot(ctx context.Context, now time.Time) (domain.DashboardSnapshot, error) {
	snap, err := r.cache.GetSnapshot(ctx)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("dashboard cache unavailable: %v, recomputing from database", err)
	}

	// singleflight keeps a cold or broken cache from stampeding the counts
	result, err, _ := r.group.Do("dashboard:snapshot", func() (interface{}, error) {
		s, err := r.db.Snapshot(ctx, now)
		if err != nil {
			return nil, err
		}

		go func(s domain.DashboardSnapshot) {
			if err := r.cache.SetSnapshot(context.Background(), s); err != nil {
				logrus.Warnf("failed to cache dashboard snapshot: %v", err)
			}
		}(s)

		return s, nil
	})
	if err != nil {
		return domain.DashboardSnapshot{}, err
	}
	return result.(domain.DashboardSnapshot), nil
}
