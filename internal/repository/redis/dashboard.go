package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

const (
	KeyDashboardSnapshot = "dashboard:snapshot"

	SnapshotTTL = 60 * time.Second
)

type dashboardCache struct {
	client *redis.Client
}

var _ domain.DashboardCache = (*dashboardCache)(nil)

func NewDashboardCache(client *redis.Client) *dashboardCache {
	return &dashboardCache{
		client,
	}
}

func (c *dashboardCache) GetSnapshot(ctx context.Context) (domain.DashboardSnapshot, error) {
	data, err := c.client.Get(ctx, KeyDashboardSnapshot).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DashboardSnapshot{}, domain.ErrCacheMiss
	} else if err != nil {
		return domain.DashboardSnapshot{}, err
	}

	var snap domain.DashboardSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return domain.DashboardSnapshot{}, err
	}
	return snap, nil
}

func (c *dashboardCache) SetSnapshot(ctx context.Context, snap domain.DashboardSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyDashboardSnapshot, data, SnapshotTTL).Err()
}
