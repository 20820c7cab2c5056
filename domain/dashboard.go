package domain

import (
	"context"
	"math"
	"time"
)

type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// KPITrend compares a current value against a previous one.
type KPITrend struct {
	Current  int64 `json:"current_value"`
	Previous int64 `json:"previous_value"`
}

func (k KPITrend) Change() int64 {
	return k.Current - k.Previous
}

// ChangePercent returns the relative change rounded to one decimal.
// A previous value of zero means 100% growth when anything came in, else 0.
func (k KPITrend) ChangePercent() float64 {
	if k.Previous == 0 {
		if k.Change() > 0 {
			return 100.0
		}
		return 0.0
	}
	return math.Round(float64(k.Change())/float64(k.Previous)*1000) / 10
}

func (k KPITrend) Trend() TrendDirection {
	switch {
	case k.Change() > 0:
		return TrendUp
	case k.Change() < 0:
		return TrendDown
	default:
		return TrendStable
	}
}

type UsersKPI struct {
	TotalUsers   int64 `json:"total_users"`
	NewToday     int64 `json:"new_users_today"`
	NewYesterday int64 `json:"new_users_yesterday"`
}

func (k UsersKPI) Trend() KPITrend {
	return KPITrend{Current: k.NewToday, Previous: k.NewYesterday}
}

type MarksKPI struct {
	TotalMarks  int64 `json:"total_marks"`
	Active24h   int64 `json:"active_marks_24h"`
	ActiveMarks int64 `json:"active_marks"`
	EndedMarks  int64 `json:"ended_marks"`
}

func (k MarksKPI) Trend() KPITrend {
	return KPITrend{Current: k.ActiveMarks, Previous: k.EndedMarks}
}

type NewMarksKPI struct {
	NewToday     int64 `json:"new_marks_today"`
	NewYesterday int64 `json:"new_marks_yesterday"`
	TotalMarks   int64 `json:"total_marks"`
}

func (k NewMarksKPI) Trend() KPITrend {
	return KPITrend{Current: k.NewToday, Previous: k.NewYesterday}
}

type ContentMakerKPI struct {
	MakersToday     int64 `json:"makers_today"`
	MakersYesterday int64 `json:"makers_yesterday"`
}

func (k ContentMakerKPI) Trend() KPITrend {
	return KPITrend{Current: k.MakersToday, Previous: k.MakersYesterday}
}

type ActivityKPI struct {
	Active24h     int64 `json:"active_24h"`
	ActivePrev24h int64 `json:"active_prev_24h"`
}

func (k ActivityKPI) Trend() KPITrend {
	return KPITrend{Current: k.Active24h, Previous: k.ActivePrev24h}
}

// DashboardSnapshot bundles all dashboard metrics computed at one instant.
type DashboardSnapshot struct {
	Users         UsersKPI        `json:"users_kpi"`
	Marks         MarksKPI        `json:"marks_kpi"`
	NewMarks      NewMarksKPI     `json:"new_marks_kpi"`
	ContentMakers ContentMakerKPI `json:"content_maker_kpi"`
	Activity      ActivityKPI     `json:"activity_kpi"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// DashboardDBRepository computes the snapshot from the persistent store.
// now is the single request-scoped reference time for all day-boundary math.
type DashboardDBRepository interface {
	Snapshot(ctx context.Context, now time.Time) (DashboardSnapshot, error)
}

// DashboardRepository is the coordinating layer on top of cache and DB.
type DashboardRepository interface {
	Snapshot(ctx context.Context, now time.Time) (DashboardSnapshot, error)
}

type DashboardCache interface {
	// GetSnapshot returns ErrCacheMiss when no snapshot is cached.
	GetSnapshot(ctx context.Context) (DashboardSnapshot, error)
	SetSnapshot(ctx context.Context, snap DashboardSnapshot) error
}

type DashboardUsecase interface {
	Snapshot(ctx context.Context) (DashboardSnapshot, error)
}
