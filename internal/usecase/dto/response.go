package dto

import "github.com/infrastructure-search/internal/domain"

// AvailabilityResponse - расписание объекта и, если задан диапазон,
// признак доступности хотя бы в один день
type AvailabilityResponse struct {
	ID         string                     `json:"id"`
	Weekdays   []string                   `json:"jours"`
	Exceptions []domain.ScheduleException `json:"exceptions"`
	Available  *bool                      `json:"available,omitempty"`
}

// HealthResponse - состояние зависимостей
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
