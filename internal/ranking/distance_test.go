package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrastructure-search/internal/domain"
)

func item(id string, lat, lon *float64) *domain.SearchItem {
	return &domain.SearchItem{ID: id, Name: id, Lat: lat, Lon: lon}
}

func f(v float64) *float64 { return &v }

func TestWithDistance_FiltersAndOrders(t *testing.T) {
	center := domain.Point{Lat: 45.75, Lon: 4.85}
	candidates := []*domain.SearchItem{
		item("far", f(45.724), f(4.832)), // ~3.2 km
		item("near", f(45.76), f(4.86)),  // ~1.4 km
		item("here", f(45.75), f(4.85)),
		item("half", f(45.75), nil),
		item("unknown", nil, nil),
	}

	ranked := WithDistance(candidates, center, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "here", ranked[0].ID)
	assert.Equal(t, "near", ranked[1].ID)
	assert.InDelta(t, 0, *ranked[0].DistanceKm, 1e-6)
	for _, r := range ranked {
		assert.GreaterOrEqual(t, *r.DistanceKm, 0.0)
		assert.LessOrEqual(t, *r.DistanceKm, 2.0)
	}
}

func TestWithDistance_DoesNotMutateInput(t *testing.T) {
	stale := 99.0
	in := item("here", f(45.75), f(4.85))
	in.DistanceKm = &stale

	ranked := WithDistance([]*domain.SearchItem{in}, domain.Point{Lat: 45.75, Lon: 4.85}, 1)

	require.Len(t, ranked, 1)
	assert.Equal(t, 99.0, *in.DistanceKm)
	assert.InDelta(t, 0, *ranked[0].DistanceKm, 1e-6)
}

func TestWithDistance_TiesBrokenByID(t *testing.T) {
	ranked := WithDistance([]*domain.SearchItem{
		item("b", f(0), f(1)),
		item("a", f(0), f(-1)),
	}, domain.Point{Lat: 0, Lon: 0}, 500)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "b", ranked[1].ID)
}

func TestWithDistance_EmptyAndNegativeRadius(t *testing.T) {
	assert.Empty(t, WithDistance(nil, domain.Point{}, 10))
	assert.Empty(t, WithDistance([]*domain.SearchItem{item("x", f(0), f(0))}, domain.Point{}, -1))
}

func TestWithDistance_CenterSurvivesTinyRadius(t *testing.T) {
	centers := []domain.Point{
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 48.8566, Lon: 2.3522},
		{Lat: 89.9999, Lon: 179.9999},
	}
	for _, c := range centers {
		for _, radius := range []float64{0, 0.0001} {
			ranked := WithDistance([]*domain.SearchItem{item("here", f(c.Lat), f(c.Lon))}, c, radius)

			require.Len(t, ranked, 1, "center %v radius %v", c, radius)
			assert.Equal(t, 0.0, *ranked[0].DistanceKm)
		}
	}
}
