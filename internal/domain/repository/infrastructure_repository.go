package repository

import (
	"context"
	"time"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/query"
)

// InfrastructureRepository - доступ к хранилищу объектов (только чтение)
type InfrastructureRepository interface {
	// Search выполняет скомпилированный план поиска
	Search(ctx context.Context, plan *query.Plan) ([]*domain.SearchItem, error)

	// ListSchedules возвращает расписания всех объектов, у которых есть хотя бы
	// один день недели или исключение, пересекающее [from, to]
	ListSchedules(ctx context.Context, from, to time.Time) ([]domain.Schedule, error)

	// ListFacets возвращает значения фасетов и максимальную вместимость
	ListFacets(ctx context.Context) (*domain.Facets, error)

	// GetByID возвращает карточку объекта с сообщением, активным на дату asOf
	GetByID(ctx context.Context, id string, asOf time.Time) (*domain.InfrastructureDetail, error)

	// GetSchedule возвращает расписание одного объекта
	GetSchedule(ctx context.Context, id string) (*domain.Schedule, error)

	// Health проверяет соединение с хранилищем
	Health(ctx context.Context) error
}
