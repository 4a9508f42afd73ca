package query

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrastructure-search/internal/domain"
	apperrors "github.com/infrastructure-search/internal/pkg/errors"
)

func nan() float64 { return math.NaN() }

func floatPtr(v float64) *float64 { return &v }

func kinds(p *Plan) []Kind {
	out := make([]Kind, 0, len(p.Predicates))
	for _, pr := range p.Predicates {
		out = append(out, pr.Kind())
	}
	return out
}

func TestBuildPlan_EmptyRequest(t *testing.T) {
	p, err := BuildPlan(domain.FilterRequest{}, Options{})
	require.NoError(t, err)

	assert.Empty(t, p.Predicates)
	assert.Nil(t, p.Distance)
	assert.Equal(t, OrderName, p.Order)
	assert.Equal(t, 100, p.Limit)
}

func TestBuildPlan_ClauseSelection(t *testing.T) {
	day := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		req   domain.FilterRequest
		kinds []Kind
		order Order
	}{
		{
			name:  "blank text is ignored",
			req:   domain.FilterRequest{Query: "   "},
			kinds: []Kind{},
			order: OrderName,
		},
		{
			name:  "text",
			req:   domain.FilterRequest{Query: "gym"},
			kinds: []Kind{KindText},
			order: OrderRelevance,
		},
		{
			name:  "only blank facet values",
			req:   domain.FilterRequest{RoomTypes: []string{"", "  "}},
			kinds: []Kind{},
			order: OrderName,
		},
		{
			name:  "capacity lower bound",
			req:   domain.FilterRequest{CapacityMin: floatPtr(50)},
			kinds: []Kind{KindCapacity},
			order: OrderName,
		},
		{
			name:  "date range",
			req:   domain.FilterRequest{DateTo: &day},
			kinds: []Kind{KindAvailableInRange},
			order: OrderName,
		},
		{
			name:  "radius without center",
			req:   domain.FilterRequest{RadiusKm: 10},
			kinds: []Kind{},
			order: OrderName,
		},
		{
			name:  "center without radius",
			req:   domain.FilterRequest{Center: &domain.Point{Lat: 45, Lon: 4}},
			kinds: []Kind{},
			order: OrderName,
		},
		{
			name:  "negative radius",
			req:   domain.FilterRequest{Center: &domain.Point{Lat: 45.75, Lon: 4.85}, RadiusKm: -5},
			kinds: []Kind{},
			order: OrderName,
		},
		{
			name:  "distance with text",
			req:   domain.FilterRequest{Query: "gym", Center: &domain.Point{Lat: 45, Lon: 4}, RadiusKm: 5},
			kinds: []Kind{KindText, KindHasPosition, KindDistance},
			order: OrderDistance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildPlan(tt.req, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.kinds, kinds(p))
			assert.Equal(t, tt.order, p.Order)
		})
	}
}

func TestBuildPlan_InvalidInput(t *testing.T) {
	_, err := BuildPlan(domain.FilterRequest{CapacityMin: floatPtr(10), CapacityMax: floatPtr(5)}, Options{})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRequest))

	_, err = BuildPlan(domain.FilterRequest{Center: &domain.Point{Lat: 95, Lon: 0}, RadiusKm: 5}, Options{})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCoordinates))

	_, err = BuildPlan(domain.FilterRequest{Center: &domain.Point{Lat: 0, Lon: 0}, RadiusKm: math.Inf(1)}, Options{})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidCoordinates))

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = BuildPlan(domain.FilterRequest{DateFrom: &from, DateTo: &to}, Options{MaxDateRangeDays: 731})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidDateRange))
}

func TestPlan_ResolveAvailability(t *testing.T) {
	day := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	p, err := BuildPlan(domain.FilterRequest{Query: "x", DateFrom: &day}, Options{})
	require.NoError(t, err)

	p.ResolveAvailability(map[string]struct{}{"c": {}, "a": {}, "b": {}})

	_, pending := p.AvailabilityRange()
	assert.False(t, pending)
	assert.False(t, p.Empty())
	assert.Equal(t, AvailableIn{IDs: []string{"a", "b", "c"}}, p.Predicates[1])
	assert.Equal(t, []string{"text", "available_in"}, p.Kinds())
}
