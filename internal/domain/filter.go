package domain

import "time"

// FilterRequest - структурированный запрос поиска. Пустой список фасета
// не ограничивает выдачу; значения внутри фасета объединяются по ИЛИ,
// разные фасеты - по И.
type FilterRequest struct {
	Query              string
	RoomTypes          []string
	EquipmentTypes     []string
	AccessibilityTypes []string
	CapacityMin        *float64
	CapacityMax        *float64
	Center             *Point
	RadiusKm           float64
	DateFrom           *time.Time
	DateTo             *time.Time
	Limit              int
}

// DistanceEnabled - фильтр по расстоянию включён только при заданных центре и радиусе > 0
func (f FilterRequest) DistanceEnabled() bool {
	return f.Center != nil && f.RadiusKm > 0
}

// HasDateRange - задана хотя бы одна граница дат
func (f FilterRequest) HasDateRange() bool {
	return f.DateFrom != nil || f.DateTo != nil
}

// Facet - независимое измерение категорий
type Facet int

const (
	FacetRoomType Facet = iota
	FacetEquipment
	FacetAccessibility
)

func (f Facet) String() string {
	switch f {
	case FacetRoomType:
		return "room_type"
	case FacetEquipment:
		return "equipment"
	case FacetAccessibility:
		return "accessibility"
	default:
		return "unknown"
	}
}
