package database

import (
	"context"
	"exam_integrity_backend/internal/config"
	"exam_integrity_backend/pkg/logger"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// redisOptions 连接池大小取自配置，未配置时交给 go-redis 的默认值
func redisOptions(cfg *config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	}
}

// InitRedis 连接报告缓存；失败时由调用方决定是否降级
func InitRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := redisOptions(cfg)
	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}

	logger.Log.Info("Redis connection established",
		zap.String("addr", opts.Addr),
		zap.Int("pool_size", opts.PoolSize),
		zap.Int("min_idle_conns", opts.MinIdleConns),
	)
	return rdb, nil
}
