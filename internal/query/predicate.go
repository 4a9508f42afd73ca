// Package query строит план поиска из структурированного запроса в виде
// дерева типизированных предикатов и отдельно переводит его в SQL нужного
// диалекта. Фрагменты SQL и их аргументы появляются только при трансляции.
package query

import (
	"github.com/infrastructure-search/internal/availability"
	"github.com/infrastructure-search/internal/domain"
)

// Kind - вид предиката
type Kind int

const (
	KindText Kind = iota
	KindCategory
	KindCapacity
	KindAvailableInRange
	KindAvailableIn
	KindDistance
	KindBox
	KindHasPosition
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCategory:
		return "category"
	case KindCapacity:
		return "capacity"
	case KindAvailableInRange:
		return "available_in_range"
	case KindAvailableIn:
		return "available_in"
	case KindDistance:
		return "distance"
	case KindBox:
		return "box"
	case KindHasPosition:
		return "has_position"
	default:
		return "unknown"
	}
}

// Predicate - одно независимое условие конъюнкции плана
type Predicate interface {
	Kind() Kind
}

// TextMatch - имя ИЛИ адрес содержат подстроку без учёта регистра
type TextMatch struct {
	Text string
}

// CategoryIn - у объекта есть хотя бы одна связь с одним из значений фасета
type CategoryIn struct {
	Facet  domain.Facet
	Values []string
}

// CapacityBetween - границы вместимости; объекты без вместимости отсекаются
type CapacityBetween struct {
	Min *float64
	Max *float64
}

// AvailableInRange - объект открыт хотя бы в один день отрезка.
// До трансляции должен быть заменён на AvailableIn.
type AvailableInRange struct {
	Range availability.Range
}

// AvailableIn - объект входит в заранее вычисленное множество доступных
type AvailableIn struct {
	IDs []string
}

// DistanceWithin - расстояние по большому кругу от центра не больше радиуса
type DistanceWithin struct {
	Center   domain.Point
	RadiusKm float64
}

// WithinBox - позиция внутри прямоугольника карты
type WithinBox struct {
	Box domain.BoundingBox
}

// HasPosition - известны обе координаты
type HasPosition struct{}

func (TextMatch) Kind() Kind        { return KindText }
func (CategoryIn) Kind() Kind       { return KindCategory }
func (CapacityBetween) Kind() Kind  { return KindCapacity }
func (AvailableInRange) Kind() Kind { return KindAvailableInRange }
func (AvailableIn) Kind() Kind      { return KindAvailableIn }
func (DistanceWithin) Kind() Kind   { return KindDistance }
func (WithinBox) Kind() Kind        { return KindBox }
func (HasPosition) Kind() Kind      { return KindHasPosition }
