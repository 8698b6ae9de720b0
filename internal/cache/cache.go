package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ethyield/stakewatch/internal/yield"
)

const (
	snapshotKey = "stakewatch:snapshot"
	snapshotTTL = 24 * time.Hour
)

// Cache persists the latest snapshot in Redis so a restarted process can
// serve the previous ranking before its first fetch completes.
type Cache struct {
	rdb *redis.Client
}

// New connects to Redis and verifies the connection.
func New(redisURL, password string) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if password != "" {
		opts.Password = password
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{rdb: rdb}, nil
}

// Close shuts down the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

// Put stores the snapshot with a TTL; anything older than a day is not worth
// warm-starting from.
func (c *Cache) Put(ctx context.Context, snap *yield.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, snapshotKey, b, snapshotTTL).Err()
}

// Get returns the cached snapshot, or nil when none is stored.
func (c *Cache) Get(ctx context.Context) (*yield.Snapshot, error) {
	b, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap yield.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
