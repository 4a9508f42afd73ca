package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/pkg/validator"
)

func fp(v float64) *float64 { return &v }

func TestSearchRequest_ToFilter(t *testing.T) {
	req := SearchRequest{
		Query:      "gym",
		RoomTypes:  []string{"Gymnase"},
		DistanceKm: fp(5),
		CenterLat:  fp(45.75),
		CenterLon:  fp(4.85),
		DateFrom:   "2025-07-14",
		DateTo:     "2025-07-20T23:30:00+02:00",
		Limit:      20,
	}

	f, err := req.ToFilter()
	require.NoError(t, err)

	assert.Equal(t, "gym", f.Query)
	require.NotNil(t, f.Center)
	assert.Equal(t, 45.75, f.Center.Lat)
	assert.Equal(t, 5.0, f.RadiusKm)
	assert.True(t, f.DistanceEnabled())
	assert.Equal(t, time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	// calendar date in the client's offset
	assert.Equal(t, time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC), *f.DateTo)
}

func TestSearchRequest_HalfCenterDisablesDistance(t *testing.T) {
	f, err := SearchRequest{DistanceKm: fp(5), CenterLat: fp(45)}.ToFilter()
	require.NoError(t, err)
	assert.Nil(t, f.Center)
	assert.False(t, f.DistanceEnabled())
}

func TestSearchRequest_BadDate(t *testing.T) {
	_, err := SearchRequest{DateFrom: "14/07/2025"}.ToFilter()
	assert.True(t, errors.Is(err, errors.ErrInvalidDateRange))
}

func TestSearchRequest_Validation(t *testing.T) {
	assert.NoError(t, validator.Validate(SearchRequest{}))
	assert.NoError(t, validator.Validate(SearchRequest{Limit: 100000}), "limit is clamped, not rejected")
	assert.Error(t, validator.Validate(SearchRequest{CenterLat: fp(91)}))
	assert.NoError(t, validator.Validate(SearchRequest{DistanceKm: fp(-1)}), "non-positive radius disables the filter")
}

func TestViewportRequest_Validation(t *testing.T) {
	assert.NoError(t, validator.Validate(ViewportRequest{North: 49, South: 48, East: -170, West: 170}))
	assert.Error(t, validator.Validate(ViewportRequest{North: 100}))
}
