package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vibe-gaming/gatekeeper/internal/config"
)

const (
	RedisTypeSingle  = "redis"
	RedisTypeCluster = "redisCluster"

	pingTimeout = 1500 * time.Millisecond
	ioTimeout   = time.Second
)

// NewRedis connects to the single node or cluster named by cfg.Type and pings it.
// Rate limit counters and the asynq queue share this connection settings.
func NewRedis(cfg config.Cache) (redis.UniversalClient, error) {
	var client redis.UniversalClient

	switch cfg.Type {
	case RedisTypeSingle:
		client = redis.NewClient(singleOptions(cfg))
	case RedisTypeCluster:
		client = redis.NewClusterClient(clusterOptions(cfg))
	default:
		return nil, fmt.Errorf("wrong redis type %q", cfg.Type)
	}

	if err := ping(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s ping failed: %w", cfg.Type, err)
	}

	return client, nil
}

func singleOptions(cfg config.Cache) *redis.Options {
	return &redis.Options{
		Addr:            cfg.Redis.Address,
		Password:        cfg.Redis.Password,
		DB:              0,
		PoolSize:        cfg.Redis.PoolSize,
		ConnMaxIdleTime: 170 * time.Second,
		DialTimeout:     ioTimeout,
		ReadTimeout:     ioTimeout,
		WriteTimeout:    ioTimeout,
	}
}

func clusterOptions(cfg config.Cache) *redis.ClusterOptions {
	return &redis.ClusterOptions{
		Addrs:    cfg.RedisCluster.Addresses,
		Password: cfg.RedisCluster.Password,
		// attempt counters must be read from masters
		RouteRandomly:   false,
		ReadOnly:        false,
		PoolSize:        cfg.RedisCluster.PoolSize,
		ConnMaxLifetime: 15 * time.Minute,
		DialTimeout:     ioTimeout,
		ReadTimeout:     ioTimeout,
		WriteTimeout:    ioTimeout,
	}
}

func ping(client redis.UniversalClient) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	return client.Ping(ctx).Err()
}
