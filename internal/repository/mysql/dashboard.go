package mysql

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository/filter"
	"github.com/RealTimeMap/RealTimeMap-backend/internal/repository/mysql/model"
)

// dashboardRepository answers every dashboard metric with the one counting
// primitive, varying only the filter map and the count column.
type dashboardRepository struct {
	DB *gorm.DB
}

var _ domain.DashboardDBRepository = (*dashboardRepository)(nil)

func NewDashboardDBRepository(db *gorm.DB) *dashboardRepository {
	return &dashboardRepository{
		DB: db,
	}
}

// Snapshot fans the independent counts out concurrently and joins them.
// All day-boundary math derives from the single now passed in.
func (r *dashboardRepository) Snapshot(ctx context.Context, now time.Time) (domain.DashboardSnapshot, error) {
	today := filter.DateOf(now)
	yesterday := filter.DateOf(now.AddDate(0, 0, -1))

	var snap domain.DashboardSnapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		kpi, err := r.usersKPI(ctx, today, yesterday)
		if err == nil {
			snap.Users = kpi
		}
		return err
	})
	g.Go(func() error {
		kpi, err := r.marksKPI(ctx, now)
		if err == nil {
			snap.Marks = kpi
		}
		return err
	})
	g.Go(func() error {
		kpi, err := r.newMarksKPI(ctx, today, yesterday)
		if err == nil {
			snap.NewMarks = kpi
		}
		return err
	})
	g.Go(func() error {
		kpi, err := r.contentMakerKPI(ctx, today, yesterday)
		if err == nil {
			snap.ContentMakers = kpi
		}
		return err
	})
	g.Go(func() error {
		kpi, err := r.activityKPI(ctx, now)
		if err == nil {
			snap.Activity = kpi
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.DashboardSnapshot{}, err
	}
	snap.GeneratedAt = now
	return snap, nil
}

func (r *dashboardRepository) usersKPI(ctx context.Context, today, yesterday filter.Date) (domain.UsersKPI, error) {
	var kpi domain.UsersKPI
	var err error

	if kpi.TotalUsers, err = filter.Count(ctx, r.DB, &model.User{}, nil); err != nil {
		return kpi, err
	}
	kpi.NewToday, err = filter.Count(ctx, r.DB, &model.User{}, filter.Map{
		{Field: "created_at", Value: today},
	})
	if err != nil {
		return kpi, err
	}
	kpi.NewYesterday, err = filter.Count(ctx, r.DB, &model.User{}, filter.Map{
		{Field: "created_at", Value: yesterday},
	})
	return kpi, err
}

func (r *dashboardRepository) marksKPI(ctx context.Context, now time.Time) (domain.MarksKPI, error) {
	var kpi domain.MarksKPI
	var err error

	if kpi.TotalMarks, err = filter.Count(ctx, r.DB, &model.Mark{}, nil); err != nil {
		return kpi, err
	}
	kpi.ActiveMarks, err = filter.Count(ctx, r.DB, &model.Mark{}, filter.Map{
		{Field: "is_ended", Value: false},
	})
	if err != nil {
		return kpi, err
	}
	kpi.EndedMarks, err = filter.Count(ctx, r.DB, &model.Mark{}, filter.Map{
		{Field: "is_ended", Value: true},
	})
	if err != nil {
		return kpi, err
	}
	kpi.Active24h, err = filter.Count(ctx, r.DB, &model.Mark{}, filter.Map{
		{Field: "start_at", Value: filter.Lte(filter.DateOf(now.Add(-24 * time.Hour)))},
		{Field: "is_ended", Value: false},
	})
	return kpi, err
}

func (r *dashboardRepository) newMarksKPI(ctx context.Context, today, yesterday filter.Date) (domain.NewMarksKPI, error) {
	var kpi domain.NewMarksKPI
	var err error

	kpi.NewToday, err = filter.Count(ctx, r.DB, &model.Mark{}, filter.Map{
		{Field: "created_at", Value: today},
	})
	if err != nil {
		return kpi, err
	}
	kpi.NewYesterday, err = filter.Count(ctx, r.DB, &model.Mark{}, filter.Map{
		{Field: "created_at", Value: yesterday},
	})
	if err != nil {
		return kpi, err
	}
	kpi.TotalMarks, err = filter.Count(ctx, r.DB, &model.Mark{}, nil)
	return kpi, err
}

// contentMakerKPI counts unique mark owners, so this is the distinct path of
// the counting primitive.
func (r *dashboardRepository) contentMakerKPI(ctx context.Context, today, yesterday filter.Date) (domain.ContentMakerKPI, error) {
	var kpi domain.ContentMakerKPI
	var err error

	kpi.MakersToday, err = filter.Count(ctx, r.DB, &model.Mark{}, filter.Map{
		{Field: "created_at", Value: today},
	}, filter.Column("owner_id"), filter.Distinct())
	if err != nil {
		return kpi, err
	}
	kpi.MakersYesterday, err = filter.Count(ctx, r.DB, &model.Mark{}, filter.Map{
		{Field: "created_at", Value: yesterday},
	}, filter.Column("owner_id"), filter.Distinct())
	return kpi, err
}

// activityKPI compares distinct comment authors of the last 24h against the
// 24h before that. These windows are instants, not calendar days.
func (r *dashboardRepository) activityKPI(ctx context.Context, now time.Time) (domain.ActivityKPI, error) {
	var kpi domain.ActivityKPI
	var err error

	kpi.Active24h, err = filter.Count(ctx, r.DB, &model.Comment{}, filter.Map{
		{Field: "created_at", Value: filter.Gte(now.Add(-24 * time.Hour))},
	}, filter.Column("owner_id"), filter.Distinct())
	if err != nil {
		return kpi, err
	}
	kpi.ActivePrev24h, err = filter.Count(ctx, r.DB, &model.Comment{}, filter.Map{
		{Field: "created_at", Value: filter.Gte(now.Add(-48 * time.Hour))},
		{Field: "created_at", Value: filter.Lt(now.Add(-24 * time.Hour))},
	}, filter.Column("owner_id"), filter.Distinct())
	return kpi, err
}
