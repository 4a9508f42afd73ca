package domain

import "time"

// Stream names (публикуются внешними сервисами редактирования объектов)
const (
	StreamInfrastructureChanged = "stream:infrastructure:changed"
)

// InfrastructureChangedEvent - объект создан, изменён или выведен из эксплуатации
type InfrastructureChangedEvent struct {
	InfrastructureID string    `json:"infrastructure_id"`
	Action           string    `json:"action"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
