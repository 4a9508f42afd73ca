package dto

import (
	"time"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/errors"
)

// SearchRequest - тело POST /search. Имена полей совпадают с формой поиска.
type SearchRequest struct {
	Query              string   `json:"q" validate:"max=200"`
	RoomTypes          []string `json:"pieces" validate:"max=50,dive,max=200"`
	EquipmentTypes     []string `json:"equipments" validate:"max=50,dive,max=200"`
	AccessibilityTypes []string `json:"accessibilites" validate:"max=50,dive,max=200"`
	DistanceKm         *float64 `json:"distanceKm" validate:"omitempty,finite"`
	CenterLat          *float64 `json:"centerLat" validate:"omitempty,finite,min=-90,max=90"`
	CenterLon          *float64 `json:"centerLon" validate:"omitempty,finite,min=-180,max=180"`
	CapacityMin        *float64 `json:"jaugeMin" validate:"omitempty,finite,min=0"`
	CapacityMax        *float64 `json:"jaugeMax" validate:"omitempty,finite,min=0"`
	DateFrom           string   `json:"dateFrom"`
	DateTo             string   `json:"dateTo"`
	Limit              int      `json:"limit"`
}

// ToFilter переводит запрос в доменный фильтр. Центр учитывается, только
// если заданы обе координаты.
func (r SearchRequest) ToFilter() (domain.FilterRequest, error) {
	f := domain.FilterRequest{
		Query:              r.Query,
		RoomTypes:          r.RoomTypes,
		EquipmentTypes:     r.EquipmentTypes,
		AccessibilityTypes: r.AccessibilityTypes,
		CapacityMin:        r.CapacityMin,
		CapacityMax:        r.CapacityMax,
		Limit:              r.Limit,
	}

	if r.CenterLat != nil && r.CenterLon != nil {
		f.Center = &domain.Point{Lat: *r.CenterLat, Lon: *r.CenterLon}
	}
	if r.DistanceKm != nil {
		f.RadiusKm = *r.DistanceKm
	}

	var err error
	if f.DateFrom, err = parseOptionalDate("dateFrom", r.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = parseOptionalDate("dateTo", r.DateTo); err != nil {
		return f, err
	}

	return f, nil
}

func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(value)
	if err != nil {
		return nil, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{
			"field": field,
			"value": value,
		})
	}
	return &d, nil
}

// ViewportRequest - параметры GET /infrastructures
type ViewportRequest struct {
	North float64 `validate:"finite,min=-90,max=90"`
	South float64 `validate:"finite,min=-90,max=90"`
	East  float64 `validate:"finite,min=-180,max=180"`
	West  float64 `validate:"finite,min=-180,max=180"`
	Limit int
}

func (r ViewportRequest) Box() domain.BoundingBox {
	return domain.BoundingBox{North: r.North, South: r.South, East: r.East, West: r.West}
}

// AvailabilityRequest - параметры GET /infrastructures/:id/availability
type AvailabilityRequest struct {
	ID   string `validate:"required,max=64"`
	From string
	To   string
}

// Range возвращает границы дат; обе пустые - диапазон не задан
func (r AvailabilityRequest) Range() (from, to *time.Time, err error) {
	if from, err = parseOptionalDate("from", r.From); err != nil {
		return nil, nil, err
	}
	if to, err = parseOptionalDate("to", r.To); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
