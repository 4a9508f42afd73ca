package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/domain/repository"
)

// FacetsKey - ключ каталога фасетов
const FacetsKey = "facets:catalog:v1"

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
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
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

func (r *cacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.Strings("keys", keys))
	return nil
}

// GetFacets получает каталог фасетов из кеша
func (r *cacheRepository) GetFacets(ctx context.Context) (*domain.Facets, error) {
	data, err := r.Get(ctx, FacetsKey)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var facets domain.Facets
	if err := json.Unmarshal(data, &facets); err != nil {
		r.logger.Error("Failed to unmarshal facets from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal facets: %w", err)
	}

	return &facets, nil
}

// SetFacets сохраняет каталог фасетов в кеше
func (r *cacheRepository) SetFacets(ctx context.Context, facets *domain.Facets, ttl time.Duration) error {
	data, err := json.Marshal(facets)
	if err != nil {
		r.logger.Error("Failed to marshal facets", zap.Error(err))
		return fmt.Errorf("marshal facets: %w", err)
	}

	return r.Set(ctx, FacetsKey, data, ttl)
}

func (r *cacheRepository) DeleteFacets(ctx context.Context) error {
	return r.Delete(ctx, FacetsKey)
}
