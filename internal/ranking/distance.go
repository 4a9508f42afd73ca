package ranking

import (
	"sort"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/utils"
)

// WithDistance пересчитывает расстояние до центра для каждого кандидата и
// оставляет только те, что лежат не дальше radiusKm. Кандидаты без позиции
// отбрасываются. Результат упорядочен по расстоянию, при равенстве по id.
func WithDistance(candidates []*domain.SearchItem, center domain.Point, radiusKm float64) []*domain.SearchItem {
	ranked := make([]*domain.SearchItem, 0, len(candidates))
	if radiusKm < 0 {
		return ranked
	}

	for _, c := range candidates {
		p, ok := c.Position()
		if !ok {
			continue
		}
		d := utils.DistanceKm(center.Lat, center.Lon, p.Lat, p.Lon)
		if d > radiusKm {
			continue
		}
		item := *c
		item.DistanceKm = &d
		ranked = append(ranked, &item)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := *ranked[i].DistanceKm, *ranked[j].DistanceKm
		if di != dj {
			return di < dj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}
