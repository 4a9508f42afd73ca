package query

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/pkg/utils"
)

const selectColumns = "i.id, i.name, i.address, i.latitude, i.longitude"

// distanceExpr - проекция расстояния (гаверсинус, как utils.DistanceKm);
// аргументы: широта центра, широта центра, долгота центра
const distanceExpr = "2 * 6371 * ASIN(SQRT(LEAST(1, " +
	"POWER(SIN((RADIANS(i.latitude) - RADIANS(?)) / 2), 2) + " +
	"COS(RADIANS(?)) * COS(RADIANS(i.latitude)) * " +
	"POWER(SIN((RADIANS(i.longitude) - RADIANS(?)) / 2), 2))))"

type facetTable struct {
	link   string
	types  string
	typeFK string
}

var facetTables = map[domain.Facet]facetTable{
	domain.FacetRoomType:      {link: "infrastructure_room_types", types: "room_types", typeFK: "room_type_id"},
	domain.FacetEquipment:     {link: "infrastructure_equipment", types: "equipment_types", typeFK: "equipment_type_id"},
	domain.FacetAccessibility: {link: "infrastructure_accessibility", types: "accessibility_types", typeFK: "accessibility_type_id"},
}

// builder собирает текст запроса и аргументы строго в одном порядке:
// каждый фрагмент добавляется вместе со своими аргументами, число
// плейсхолдеров сверяется с числом аргументов
type builder struct {
	sb   strings.Builder
	args []interface{}
	err  error
}

func (b *builder) add(fragment string, args ...interface{}) {
	if b.err != nil {
		return
	}
	if n := strings.Count(fragment, "?"); n != len(args) {
		b.err = fmt.Errorf("fragment expects %d args, got %d", n, len(args))
		return
	}
	b.sb.WriteString(fragment)
	b.args = append(b.args, args...)
}

// Compile переводит план в SQL выбранного диалекта. План с неразрешённой
// доступностью или пустым множеством доступных не транслируется.
func Compile(p *Plan, d Dialect) (string, []interface{}, error) {
	if p.Empty() {
		return "", nil, errors.ErrInternalServer.Wrap(fmt.Errorf("plan has an empty availability set"))
	}
	if (p.Distance != nil) != (p.Order == OrderDistance) {
		return "", nil, errors.ErrInternalServer.Wrap(fmt.Errorf("distance projection and distance order must go together"))
	}

	b := &builder{}
	if p.Distance != nil {
		b.add("SELECT d.id, d.name, d.address, d.latitude, d.longitude, d.distance_km FROM (")
		b.add("SELECT "+selectColumns+", "+distanceExpr+" AS distance_km",
			p.Distance.Center.Lat, p.Distance.Center.Lat, p.Distance.Center.Lon)
	} else {
		b.add("SELECT " + selectColumns)
	}
	b.add(" FROM infrastructures i")

	for i, pr := range p.Predicates {
		if i == 0 {
			b.add(" WHERE ")
		} else {
			b.add(" AND ")
		}
		lower(b, pr)
	}

	switch p.Order {
	case OrderDistance:
		b.add(") d WHERE d.distance_km <= ? ORDER BY d.distance_km, d.id", p.Distance.RadiusKm)
	case OrderRelevance:
		b.add(" ORDER BY CASE WHEN LOWER(i.name) LIKE ? THEN 0 ELSE 1 END, i.name, i.id", likePattern(textOf(p)))
	case OrderSample:
		b.add(" ORDER BY "+d.sampleKey()+", i.id", p.Seed)
	default:
		b.add(" ORDER BY i.name, i.id")
	}
	b.add(" LIMIT ?", utils.ClampLimit(p.Limit, utils.MaxResultLimit))

	if b.err != nil {
		return "", nil, errors.ErrInternalServer.Wrap(b.err)
	}

	q, args, err := sqlx.In(b.sb.String(), b.args...)
	if err != nil {
		return "", nil, errors.ErrInternalServer.Wrap(fmt.Errorf("expand IN lists: %w", err))
	}
	return sqlx.Rebind(d.BindType(), q), args, nil
}

func lower(b *builder, pr Predicate) {
	switch v := pr.(type) {
	case TextMatch:
		pattern := likePattern(v.Text)
		b.add("(LOWER(i.name) LIKE ? OR LOWER(i.address) LIKE ?)", pattern, pattern)

	case CategoryIn:
		t, ok := facetTables[v.Facet]
		if !ok || len(v.Values) == 0 {
			b.err = fmt.Errorf("invalid category predicate for facet %s", v.Facet)
			return
		}
		b.add(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s l JOIN %s t ON t.id = l.%s WHERE l.infrastructure_id = i.id AND t.name IN (?))",
			t.link, t.types, t.typeFK,
		), v.Values)

	case CapacityBetween:
		b.add("i.capacity IS NOT NULL")
		if v.Min != nil {
			b.add(" AND i.capacity >= ?", *v.Min)
		}
		if v.Max != nil {
			b.add(" AND i.capacity <= ?", *v.Max)
		}

	case AvailableIn:
		if len(v.IDs) == 0 {
			b.err = fmt.Errorf("empty availability set")
			return
		}
		b.add("i.id IN (?)", v.IDs)

	case AvailableInRange:
		b.err = fmt.Errorf("availability range must be resolved before compiling")

	case DistanceWithin:
		minLat, maxLat, west, east, bounded := utils.RadiusBounds(v.Center.Lat, v.Center.Lon, v.RadiusKm)
		b.add("i.latitude BETWEEN ? AND ?", minLat, maxLat)
		if bounded {
			b.add(" AND ")
			lowerLon(b, west, east)
		}

	case WithinBox:
		minLat, maxLat := v.Box.LatRange()
		b.add("i.latitude BETWEEN ? AND ? AND ", minLat, maxLat)
		lowerLon(b, v.Box.West, v.Box.East)

	case HasPosition:
		b.add("i.latitude IS NOT NULL AND i.longitude IS NOT NULL")

	default:
		b.err = fmt.Errorf("unsupported predicate %T", pr)
	}
}

// lowerLon - при west > east прямоугольник пересекает линию перемены дат
func lowerLon(b *builder, west, east float64) {
	if west <= east {
		b.add("i.longitude BETWEEN ? AND ?", west, east)
		return
	}
	b.add("(i.longitude >= ? OR i.longitude <= ?)", west, east)
}

func textOf(p *Plan) string {
	for _, pr := range p.Predicates {
		if t, ok := pr.(TextMatch); ok {
			return t.Text
		}
	}
	return ""
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern - подстрока в нижнем регистре; спецсимволы LIKE экранируются
func likePattern(text string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
}
