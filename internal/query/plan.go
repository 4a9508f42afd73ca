package query

import (
	"sort"
	"strings"

	"github.com/infrastructure-search/internal/availability"
	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/pkg/utils"
)

// Order - порядок выдачи
type Order int

const (
	// OrderName - по имени, затем по id
	OrderName Order = iota
	// OrderRelevance - сначала совпадения по имени, затем по адресу
	OrderRelevance
	// OrderDistance - по возрастанию расстояния от центра
	OrderDistance
	// OrderSample - по глобальному псевдослучайному ключу hash(id, seed)
	OrderSample
)

// Plan - конъюнкция предикатов с необязательной проекцией расстояния и порядком
type Plan struct {
	Predicates []Predicate
	Distance   *DistanceWithin
	Order      Order
	Seed       string
	Limit      int
}

// Options - серверные ограничения для построения плана
type Options struct {
	MaxLimit         int
	MaxDateRangeDays int
}

// BuildPlan переводит запрос в план. Пустые фасеты и пустой текст не дают
// предикатов; центр без положительного радиуса выключает фильтр расстояния.
func BuildPlan(f domain.FilterRequest, opts Options) (*Plan, error) {
	p := &Plan{
		Order: OrderName,
		Limit: utils.ClampLimit(f.Limit, opts.MaxLimit),
	}

	if text := strings.TrimSpace(f.Query); text != "" {
		p.Predicates = append(p.Predicates, TextMatch{Text: text})
		p.Order = OrderRelevance
	}

	for _, c := range []struct {
		facet  domain.Facet
		values []string
	}{
		{domain.FacetRoomType, f.RoomTypes},
		{domain.FacetEquipment, f.EquipmentTypes},
		{domain.FacetAccessibility, f.AccessibilityTypes},
	} {
		if values := normalizeValues(c.values); len(values) > 0 {
			p.Predicates = append(p.Predicates, CategoryIn{Facet: c.facet, Values: values})
		}
	}

	if f.CapacityMin != nil || f.CapacityMax != nil {
		if f.CapacityMin != nil && f.CapacityMax != nil && *f.CapacityMin > *f.CapacityMax {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"reason": "jaugeMin is greater than jaugeMax",
			})
		}
		p.Predicates = append(p.Predicates, CapacityBetween{Min: f.CapacityMin, Max: f.CapacityMax})
	}

	if f.HasDateRange() {
		r, err := availability.NewRange(f.DateFrom, f.DateTo, opts.MaxDateRangeDays)
		if err != nil {
			return nil, err
		}
		p.Predicates = append(p.Predicates, AvailableInRange{Range: r})
	}

	if f.DistanceEnabled() {
		if !utils.ValidateCoordinates(f.Center.Lat, f.Center.Lon) || !utils.IsFinite(f.RadiusKm) {
			return nil, errors.ErrInvalidCoordinates
		}
		d := DistanceWithin{Center: *f.Center, RadiusKm: f.RadiusKm}
		p.Predicates = append(p.Predicates, HasPosition{}, d)
		p.Distance = &d
		p.Order = OrderDistance
	}

	return p, nil
}

// ViewportPlan - выборка для карты: только объекты с позицией внутри
// прямоугольника, упорядоченные глобальным ключом, не зависящим от прямоугольника
func ViewportPlan(box domain.BoundingBox, limit, maxLimit int, seed string) (*Plan, error) {
	for _, v := range []float64{box.North, box.South, box.East, box.West} {
		if !utils.IsFinite(v) {
			return nil, errors.ErrInvalidBBox
		}
	}

	return &Plan{
		Predicates: []Predicate{HasPosition{}, WithinBox{Box: box}},
		Order:      OrderSample,
		Seed:       seed,
		Limit:      utils.ClampLimit(limit, maxLimit),
	}, nil
}

// AvailabilityRange возвращает отрезок дат, если план ещё требует
// вычисления множества доступных объектов
func (p *Plan) AvailabilityRange() (availability.Range, bool) {
	for _, pr := range p.Predicates {
		if a, ok := pr.(AvailableInRange); ok {
			return a.Range, true
		}
	}
	return availability.Range{}, false
}

// ResolveAvailability заменяет AvailableInRange на AvailableIn с готовым
// множеством id. Id сортируются, чтобы SQL и аргументы были детерминированы.
func (p *Plan) ResolveAvailability(available map[string]struct{}) {
	ids := make([]string, 0, len(available))
	for id := range available {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for i, pr := range p.Predicates {
		if _, ok := pr.(AvailableInRange); ok {
			p.Predicates[i] = AvailableIn{IDs: ids}
		}
	}
}

// Empty - план заведомо ничего не найдёт (пустое множество доступных)
func (p *Plan) Empty() bool {
	for _, pr := range p.Predicates {
		if a, ok := pr.(AvailableIn); ok && len(a.IDs) == 0 {
			return true
		}
	}
	return false
}

// Kinds - виды предикатов плана, для логов без значений параметров
func (p *Plan) Kinds() []string {
	kinds := make([]string, 0, len(p.Predicates))
	for _, pr := range p.Predicates {
		kinds = append(kinds, pr.Kind().String())
	}
	return kinds
}

func normalizeValues(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
