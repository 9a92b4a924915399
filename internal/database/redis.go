package database

import (
	"context"
	"fmt"
	"net"

	"github.com/mars1-events-planning/eventool-backend/config"

	"github.com/redis/go-redis/v9"
)

// InitRedis 建立活動快取用的 client；連不上時由呼叫端決定是否停用快取
func InitRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        net.JoinHostPort(cfg.Host, cfg.Port),
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: connectTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", rdb.Options().Addr, err)
	}

	return rdb, nil
}
