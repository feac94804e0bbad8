package service

import (
	"context"
	"encoding/json"
	"exam_integrity_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReportCache 缓存已冻结作答的分析结果
type ReportCache interface {
	Get(ctx context.Context, key string) (*model.AttemptIntegrityReport, bool, error)
	Set(ctx context.Context, key string, report *model.AttemptIntegrityReport, ttl time.Duration) error
}

type RedisReportCache struct {
	Redis *redis.Client
}

func NewRedisReportCache(rdb *redis.Client) *RedisReportCache {
	return &RedisReportCache{Redis: rdb}
}

func (c *RedisReportCache) Get(ctx context.Context, key string) (*model.AttemptIntegrityReport, bool, error) {
	val, err := c.Redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var report model.AttemptIntegrityReport
	if err := json.Unmarshal(val, &report); err != nil {
		return nil, false, err
	}
	return &report, true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, report *model.AttemptIntegrityReport, ttl time.Duration) error {
	b, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, key, b, ttl).Err()
}
