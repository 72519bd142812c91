// Package cache wraps go-redis/v9 for this module's two cache concerns: a
// generic key/value facade (grounded on the teacher's RedisManager) and a
// table-snapshot cache that lets a connector/gate process reconnect a
// client to an in-progress match without replaying the whole event log
// from persistence.
// Grounded on common/database/redis.go's RedisManager: a struct wrapping
// redis.Client with Set/Get/Del/Exists/Incr, Ping'd at construction.
// Generalized from the teacher's Cli/ClusterCli dual-mode client into a
// single non-cluster client, since SPEC_FULL.md's cache concern is a
// single-process match server, not the teacher's sharded cluster
// deployment -- ClusterClient support can be added back the same way the
// teacher did it if this ever needs to scale past one Redis node.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mahjongcore/internal/config"
	"mahjongcore/internal/enginerr"
)

// Manager is a thin facade over a redis.Client, matching the teacher's
// RedisManager surface.
type Manager struct {
	cli *redis.Client
}

// New connects to Redis per cfg, matching the teacher's NewRedis (dial,
// then Ping with a bounded timeout before returning).
func New(cfg config.RedisConf) (*Manager, error) {
	cli := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: connect: %w", err)
	}
	return &Manager{cli: cli}, nil
}

func (m *Manager) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	return m.cli.Set(ctx, key, value, expiration).Err()
}

// Get returns enginerr.ErrCacheMiss on a redis.Nil response, matching the
// sentinel-error convention internal/enginerr establishes for this
// module's non-domain subsystems.
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	val, err := m.cli.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", enginerr.ErrCacheMiss
	}
	if err != nil {
		return "", fmt.Errorf("cache: get %s: %w", key, err)
	}
	return val, nil
}

func (m *Manager) Del(ctx context.Context, keys ...string) error {
	return m.cli.Del(ctx, keys...).Err()
}

func (m *Manager) Exists(ctx context.Context, keys ...string) (int64, error) {
	return m.cli.Exists(ctx, keys...).Result()
}

func (m *Manager) Incr(ctx context.Context, key string) (int64, error) {
	return m.cli.Incr(ctx, key).Result()
}

func (m *Manager) Close() error {
	return m.cli.Close()
}
