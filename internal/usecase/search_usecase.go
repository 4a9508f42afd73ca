package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/availability"
	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/domain/repository"
	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/pkg/metrics"
	"github.com/infrastructure-search/internal/pkg/utils"
	"github.com/infrastructure-search/internal/query"
	"github.com/infrastructure-search/internal/ranking"
)

// QuickSearchLimit - размер выдачи быстрого поиска по умолчанию
const QuickSearchLimit = 12

// SearchOptions - параметры поиска из конфигурации
type SearchOptions struct {
	MaxLimit         int
	MaxDateRangeDays int
	QueryTimeout     time.Duration
	ViewportSeed     string
}

// SearchUseCase - оркестратор поиска: доступность, план, запрос к
// хранилищу, уточнение расстояний и усечение выдачи
type SearchUseCase struct {
	infraRepo repository.InfrastructureRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	opts      SearchOptions
}

func NewSearchUseCase(
	infraRepo repository.InfrastructureRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts SearchOptions,
) *SearchUseCase {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 5 * time.Second
	}
	return &SearchUseCase{
		infraRepo: infraRepo,
		metrics:   m,
		logger:    logger,
		opts:      opts,
	}
}

// Search выполняет структурированный поиск. При любой ошибке возвращается
// пустой список вместе с типизированной ошибкой.
func (uc *SearchUseCase) Search(ctx context.Context, f domain.FilterRequest) ([]*domain.SearchItem, error) {
	return uc.run(ctx, "search", f)
}

// QuickSearch - поиск по тексту для строки быстрого поиска. Пустой запрос
// даёт пустую выдачу без обращения к хранилищу.
func (uc *SearchUseCase) QuickSearch(ctx context.Context, q string, limit int) ([]*domain.SearchItem, error) {
	if strings.TrimSpace(q) == "" {
		return []*domain.SearchItem{}, nil
	}
	if limit <= 0 {
		limit = QuickSearchLimit
	}
	return uc.run(ctx, "quick_search", domain.FilterRequest{Query: q, Limit: limit})
}

func (uc *SearchUseCase) run(ctx context.Context, operation string, f domain.FilterRequest) ([]*domain.SearchItem, error) {
	started := time.Now()

	plan, err := query.BuildPlan(f, query.Options{
		MaxLimit:         uc.opts.MaxLimit,
		MaxDateRangeDays: uc.opts.MaxDateRangeDays,
	})
	if err != nil {
		return uc.fail(operation, started, nil, err)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.opts.QueryTimeout)
	defer cancel()

	if r, ok := plan.AvailabilityRange(); ok {
		schedules, err := uc.infraRepo.ListSchedules(ctx, r.From, r.To)
		if err != nil {
			return uc.fail(operation, started, plan, err)
		}
		available := availability.ResolveAvailable(schedules, r)
		uc.metrics.ObserveAvailabilitySet(len(available))
		plan.ResolveAvailability(available)
	}

	if plan.Empty() {
		uc.metrics.Observe(operation, metrics.OutcomeEmpty, started)
		return []*domain.SearchItem{}, nil
	}

	items, err := uc.infraRepo.Search(ctx, plan)
	if err != nil {
		return uc.fail(operation, started, plan, err)
	}

	if plan.Distance != nil {
		items = ranking.WithDistance(items, plan.Distance.Center, plan.Distance.RadiusKm)
	}
	if len(items) > plan.Limit {
		items = items[:plan.Limit]
	}

	uc.metrics.Observe(operation, outcomeOf(len(items)), started)
	uc.logger.Debug("Search completed",
		zap.String("operation", operation),
		zap.Strings("predicates", plan.Kinds()),
		zap.Int("results", len(items)),
		zap.Duration("elapsed", time.Since(started)))

	return items, nil
}

// Viewport - выборка объектов в видимой области карты с глобально
// стабильным порядком
func (uc *SearchUseCase) Viewport(ctx context.Context, box domain.BoundingBox, limit int) ([]*domain.SearchItem, error) {
	started := time.Now()

	plan, err := query.ViewportPlan(box, limit, uc.opts.MaxLimit, uc.opts.ViewportSeed)
	if err != nil {
		return uc.fail("viewport", started, nil, err)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.opts.QueryTimeout)
	defer cancel()

	items, err := uc.infraRepo.Search(ctx, plan)
	if err != nil {
		return uc.fail("viewport", started, plan, err)
	}

	uc.metrics.Observe("viewport", outcomeOf(len(items)), started)
	return items, nil
}

// ViewportLimit - лимит, фактически применяемый к выборке для карты
func (uc *SearchUseCase) ViewportLimit(limit int) int {
	return utils.ClampLimit(limit, uc.opts.MaxLimit)
}

func (uc *SearchUseCase) fail(operation string, started time.Time, plan *query.Plan, err error) ([]*domain.SearchItem, error) {
	outcome := outcomeOfError(err)
	uc.metrics.Observe(operation, outcome, started)

	fields := []zap.Field{
		zap.String("operation", operation),
		zap.String("outcome", outcome),
		zap.Error(err),
	}
	if plan != nil {
		fields = append(fields, zap.Strings("predicates", plan.Kinds()))
	}
	if outcome == metrics.OutcomeClient {
		uc.logger.Debug("Search rejected", fields...)
		return []*domain.SearchItem{}, err
	}

	// параметры запроса пишутся только в лог, клиенту уходит код ошибки
	if plan != nil {
		fields = append(fields,
			zap.Int("limit", plan.Limit),
			zap.Int("order", int(plan.Order)),
			zap.String("seed", plan.Seed),
			zap.Any("distance", plan.Distance),
			zap.Any("predicate_params", plan.Predicates))
	}
	uc.logger.Error("Search failed", fields...)

	return []*domain.SearchItem{}, err
}

func outcomeOf(n int) string {
	if n == 0 {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeOK
}

func outcomeOfError(err error) string {
	switch {
	case errors.IsClientError(err):
		return metrics.OutcomeClient
	case errors.Is(err, errors.ErrUpstreamUnavailable):
		return metrics.OutcomeUpstream
	default:
		return metrics.OutcomeError
	}
}
