package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"edutech_backend/internal/model"
	"edutech_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const resultCachePrefix = "results:"

// CachedResultRepository 按用户名缓存历史记录，新增结果时失效。Redis 故障时直接读底层存储
type CachedResultRepository struct {
	ResultRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewCachedResultRepository(inner ResultRepository, rdb *redis.Client, ttl time.Duration) *CachedResultRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedResultRepository{ResultRepository: inner, Redis: rdb, TTL: ttl}
}

func cacheKey(username string) string {
	return resultCachePrefix + username
}

func (r *CachedResultRepository) Create(ctx context.Context, result *model.Result) error {
	if err := r.ResultRepository.Create(ctx, result); err != nil {
		return err
	}
	if err := r.Redis.Del(ctx, cacheKey(result.Username)).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate result cache",
			zap.String("username", result.Username), zap.Error(err))
	}
	return nil
}

func (r *CachedResultRepository) FindByUsername(ctx context.Context, username string) ([]model.Result, error) {
	key := cacheKey(username)

	raw, err := r.Redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []model.Result
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			return cached, nil
		}
		logger.Log.Warn("Discarding corrupt result cache entry", zap.String("username", username))
	case !errors.Is(err, redis.Nil):
		logger.Log.Warn("Result cache unavailable", zap.Error(err))
	}

	results, err := r.ResultRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		if err := r.Redis.Set(ctx, key, data, r.TTL).Err(); err != nil {
			logger.Log.Warn("Failed to populate result cache", zap.Error(err))
		}
	}
	return results, nil
}
