package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/mars1-events-planning/eventool-backend/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// 啟動時連線檢查的上限，避免資料庫不通時卡住
const connectTimeout = 5 * time.Second

// PostgresURL 組出 pgx 連線字串，時區固定為 UTC
func PostgresURL(cfg *config.DatabaseConfig) string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, cfg.Port),
		Path:   "/" + cfg.DBName,
	}
	query := dsn.Query()
	query.Set("sslmode", cfg.SSLMode)
	query.Set("timezone", "UTC")
	query.Set("connect_timeout", fmt.Sprintf("%d", int(connectTimeout.Seconds())))
	dsn.RawQuery = query.Encode()
	return dsn.String()
}

// InitDatabase 建立連接池並確認可連線
func InitDatabase(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(PostgresURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database %s:%s: %w", cfg.Host, cfg.Port, err)
	}

	return pool, nil
}
