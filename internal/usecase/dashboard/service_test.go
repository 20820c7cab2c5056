package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

type fakeRepo struct {
	got  time.Time
	snap domain.DashboardSnapshot
}

func (f *fakeRepo) Snapshot(ctx context.Context, now time.Time) (domain.DashboardSnapshot, error) {
	f.got = now
	f.snap.GeneratedAt = now
	return f.snap, nil
}

func TestSnapshotThreadsSingleInstant(t *testing.T) {
	repo := &fakeRepo{snap: domain.DashboardSnapshot{Users: domain.UsersKPI{TotalUsers: 9}}}
	svc := NewService(repo)

	fixed := time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	snap, err := svc.Snapshot(context.Background())

	require.NoError(t, err)
	assert.True(t, fixed.Equal(repo.got))
	assert.True(t, fixed.Equal(snap.GeneratedAt))
	assert.Equal(t, int64(9), snap.Users.TotalUsers)
}
