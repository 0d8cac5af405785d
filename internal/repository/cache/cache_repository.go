package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func scheduleKey(cell string) string {
	return fmt.Sprintf("schedule:%s", cell)
}

// GetSchedule busca a agenda cacheada para uma célula geohash
func (r *cacheRepository) GetSchedule(ctx context.Context, cell string) (*domain.CollectionSchedule, error) {
	data, err := r.Get(ctx, scheduleKey(cell))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // cache miss
	}

	var schedule domain.CollectionSchedule
	if err := json.Unmarshal(data, &schedule); err != nil {
		r.logger.Error("Failed to unmarshal cached schedule", zap.Error(err))
		return nil, fmt.Errorf("unmarshal schedule: %w", err)
	}

	return &schedule, nil
}

// SetSchedule guarda a agenda normalizada para uma célula geohash
func (r *cacheRepository) SetSchedule(ctx context.Context, cell string, schedule *domain.CollectionSchedule, ttl time.Duration) error {
	data, err := json.Marshal(schedule)
	if err != nil {
		r.logger.Error("Failed to marshal schedule", zap.Error(err))
		return fmt.Errorf("marshal schedule: %w", err)
	}

	return r.Set(ctx, scheduleKey(cell), data, ttl)
}
