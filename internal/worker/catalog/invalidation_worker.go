package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/domain/repository"
	"github.com/infrastructure-search/internal/worker"
)

const (
	readBlock     = time.Second     // ожидание новых событий в XREADGROUP
	errorCooldown = 1 * time.Second // пауза после ошибки Redis
)

// Invalidator сбрасывает кеш каталога фасетов
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// InvalidationWorker читает события изменения объектов и сбрасывает кеш
// каталога фасетов. Одна пачка событий - один сброс.
type InvalidationWorker struct {
	*worker.BaseWorker
	streamRepo  repository.StreamRepository
	invalidator Invalidator
	batchSize   int
}

func NewInvalidationWorker(
	streamRepo repository.StreamRepository,
	invalidator Invalidator,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *InvalidationWorker {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &InvalidationWorker{
		BaseWorker:  worker.NewBaseWorker("catalog-invalidation", consumerGroup, logger),
		streamRepo:  streamRepo,
		invalidator: invalidator,
		batchSize:   batchSize,
	}
}

// Start запускает цикл обработки до остановки или отмены контекста
func (w *InvalidationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting catalog invalidation worker",
		zap.String("stream", domain.StreamInfrastructureChanged),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamInfrastructureChanged, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.StopChan():
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			if w.IsStopped() {
				logger.Info("Worker stopped")
				return nil
			}
			return ctx.Err()
		default:
		}

		if _, err := w.ProcessBatch(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			logger.Error("Failed to process batch", zap.Error(err))
			select {
			case <-time.After(errorCooldown):
			case <-ctx.Done():
			}
		}
	}
}

// ProcessBatch обрабатывает одну пачку событий и возвращает число
// подтверждённых сообщений. Если сброс кеша не удался, сообщения остаются
// неподтверждёнными и будут прочитаны повторно.
func (w *InvalidationWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamInfrastructureChanged,
		w.ConsumerGroup(),
		w.ConsumerName(),
		w.batchSize,
		readBlock,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	valid := make([]string, 0, len(messages))
	malformed := make([]string, 0)
	for _, msg := range messages {
		var event domain.InfrastructureChangedEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || event.InfrastructureID == "" {
			logger.Warn("Skipping malformed event", zap.String("message_id", msg.ID), zap.Error(err))
			malformed = append(malformed, msg.ID)
			continue
		}
		logger.Debug("Infrastructure changed",
			zap.String("infrastructure_id", event.InfrastructureID),
			zap.String("action", event.Action))
		valid = append(valid, msg.ID)
	}

	// битые сообщения подтверждаются сразу, иначе они застрянут в pending
	if len(malformed) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamInfrastructureChanged, w.ConsumerGroup(), malformed...); err != nil {
			return 0, err
		}
	}
	if len(valid) == 0 {
		return len(malformed), nil
	}

	if err := w.invalidator.Invalidate(ctx); err != nil {
		return len(malformed), fmt.Errorf("failed to invalidate facet catalog: %w", err)
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamInfrastructureChanged, w.ConsumerGroup(), valid...); err != nil {
		return len(malformed), err
	}

	logger.Info("Facet catalog invalidated", zap.Int("events", len(valid)))
	return len(malformed) + len(valid), nil
}
