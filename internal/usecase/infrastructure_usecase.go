package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/availability"
	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/domain/repository"
	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/pkg/metrics"
	"github.com/infrastructure-search/internal/usecase/dto"
)

// InfrastructureUseCase - карточка объекта и его расписание
type InfrastructureUseCase struct {
	infraRepo    repository.InfrastructureRepository
	metrics      *metrics.Metrics
	logger       *zap.Logger
	maxRangeDays int
	queryTimeout time.Duration
	now          func() time.Time
}

func NewInfrastructureUseCase(
	infraRepo repository.InfrastructureRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts SearchOptions,
) *InfrastructureUseCase {
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = 5 * time.Second
	}
	return &InfrastructureUseCase{
		infraRepo:    infraRepo,
		metrics:      m,
		logger:       logger,
		maxRangeDays: opts.MaxDateRangeDays,
		queryTimeout: opts.QueryTimeout,
		now:          time.Now,
	}
}

// GetDetail возвращает карточку объекта. Выведенный из эксплуатации объект
// доступен только его владельцу.
func (uc *InfrastructureUseCase) GetDetail(ctx context.Context, id, viewerID string) (*domain.InfrastructureDetail, error) {
	started := time.Now()

	ctx, cancel := context.WithTimeout(ctx, uc.queryTimeout)
	defer cancel()

	detail, err := uc.infraRepo.GetByID(ctx, id, uc.now())
	if err != nil {
		uc.metrics.Observe("detail", outcomeOfError(err), started)
		if !errors.Is(err, errors.ErrInfrastructureNotFound) {
			uc.logger.Error("Failed to get infrastructure", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	if !detail.IsVisibleTo(viewerID) {
		uc.metrics.Observe("detail", metrics.OutcomeClient, started)
		return nil, errors.ErrForbidden
	}
	detail.IsOwner = viewerID != "" && detail.OwnerID != nil && *detail.OwnerID == viewerID

	uc.metrics.Observe("detail", metrics.OutcomeOK, started)
	return detail, nil
}

// GetAvailability возвращает недельные дни и исключения объекта. Если
// задана хотя бы одна граница дат, вычисляется и признак доступности.
func (uc *InfrastructureUseCase) GetAvailability(ctx context.Context, req dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	started := time.Now()

	from, to, err := req.Range()
	if err != nil {
		uc.metrics.Observe("availability", metrics.OutcomeClient, started)
		return nil, err
	}

	var r *availability.Range
	if from != nil || to != nil {
		rng, err := availability.NewRange(from, to, uc.maxRangeDays)
		if err != nil {
			uc.metrics.Observe("availability", metrics.OutcomeClient, started)
			return nil, err
		}
		r = &rng
	}

	ctx, cancel := context.WithTimeout(ctx, uc.queryTimeout)
	defer cancel()

	schedule, err := uc.infraRepo.GetSchedule(ctx, req.ID)
	if err != nil {
		uc.metrics.Observe("availability", outcomeOfError(err), started)
		if !errors.Is(err, errors.ErrInfrastructureNotFound) {
			uc.logger.Error("Failed to get schedule", zap.String("id", req.ID), zap.Error(err))
		}
		return nil, err
	}

	resp := &dto.AvailabilityResponse{
		ID:         req.ID,
		Weekdays:   schedule.Weekly.Labels(),
		Exceptions: schedule.Exceptions,
	}
	if resp.Exceptions == nil {
		resp.Exceptions = []domain.ScheduleException{}
	}
	if r != nil {
		ok := availability.IsAvailable(schedule.Weekly, schedule.Exceptions, r.From, r.To)
		resp.Available = &ok
	}

	uc.metrics.Observe("availability", metrics.OutcomeOK, started)
	return resp, nil
}
