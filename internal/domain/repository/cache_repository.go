package repository

import (
	"context"
	"time"

	"github.com/infrastructure-search/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; промах - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значения из кеша
	Delete(ctx context.Context, keys ...string) error

	// GetFacets получает каталог фасетов; промах - (nil, nil)
	GetFacets(ctx context.Context) (*domain.Facets, error)

	// SetFacets сохраняет каталог фасетов
	SetFacets(ctx context.Context, facets *domain.Facets, ttl time.Duration) error

	// DeleteFacets сбрасывает каталог фасетов
	DeleteFacets(ctx context.Context) error
}
