package usecase

import (
	"context"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/domain/repository"
	"github.com/infrastructure-search/internal/pkg/metrics"
)

const localFacetsKey = "facets"

// FacetUseCase - каталог значений фасетов. Чтение идёт через локальный кеш
// процесса, затем Redis, затем хранилище. Ошибки хранилища не кешируются.
type FacetUseCase struct {
	infraRepo    repository.InfrastructureRepository
	cacheRepo    repository.CacheRepository
	local        *gocache.Cache
	metrics      *metrics.Metrics
	logger       *zap.Logger
	cacheTTL     time.Duration
	queryTimeout time.Duration
}

// NewFacetUseCase: cacheRepo может быть nil (Redis не настроен)
func NewFacetUseCase(
	infraRepo repository.InfrastructureRepository,
	cacheRepo repository.CacheRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	cacheTTL, localTTL, queryTimeout time.Duration,
) *FacetUseCase {
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &FacetUseCase{
		infraRepo:    infraRepo,
		cacheRepo:    cacheRepo,
		local:        gocache.New(localTTL, 2*localTTL),
		metrics:      m,
		logger:       logger,
		cacheTTL:     cacheTTL,
		queryTimeout: queryTimeout,
	}
}

// ListFacets всегда возвращает валидную форму каталога. При недоступном
// хранилище это пустые списки и нулевая вместимость вместе с ошибкой.
func (uc *FacetUseCase) ListFacets(ctx context.Context) (*domain.Facets, error) {
	started := time.Now()

	if v, ok := uc.local.Get(localFacetsKey); ok {
		uc.metrics.Observe("facets", metrics.OutcomeOK, started)
		return v.(*domain.Facets), nil
	}

	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetFacets(ctx)
		if err != nil {
			uc.logger.Warn("Facet cache read failed", zap.Error(err))
		} else if cached != nil {
			normalizeFacets(cached)
			uc.local.SetDefault(localFacetsKey, cached)
			uc.metrics.Observe("facets", metrics.OutcomeOK, started)
			return cached, nil
		}
	}

	qctx, cancel := context.WithTimeout(ctx, uc.queryTimeout)
	defer cancel()

	facets, err := uc.infraRepo.ListFacets(qctx)
	if err != nil {
		uc.metrics.Observe("facets", outcomeOfError(err), started)
		uc.logger.Error("Failed to list facets", zap.Error(err))
		return domain.EmptyFacets(), err
	}
	normalizeFacets(facets)

	uc.local.SetDefault(localFacetsKey, facets)
	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetFacets(ctx, facets, uc.cacheTTL); err != nil {
			uc.logger.Warn("Facet cache write failed", zap.Error(err))
		}
	}

	uc.metrics.Observe("facets", metrics.OutcomeOK, started)
	return facets, nil
}

// Invalidate сбрасывает оба уровня кеша
func (uc *FacetUseCase) Invalidate(ctx context.Context) error {
	uc.local.Delete(localFacetsKey)
	uc.metrics.CatalogInvalidated()
	if uc.cacheRepo == nil {
		return nil
	}
	return uc.cacheRepo.DeleteFacets(ctx)
}

// normalizeFacets сортирует значения и убирает повторы и пустые строки
func normalizeFacets(f *domain.Facets) {
	f.RoomTypes = sortedUnique(f.RoomTypes)
	f.EquipmentTypes = sortedUnique(f.EquipmentTypes)
	f.AccessibilityTypes = sortedUnique(f.AccessibilityTypes)
	if f.MaxCapacity < 0 {
		f.MaxCapacity = 0
	}
}

func sortedUnique(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
