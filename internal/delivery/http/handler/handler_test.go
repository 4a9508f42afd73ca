package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/infrastructure-search/internal/delivery/http/handler"
	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/pkg/errors"
	"github.com/infrastructure-search/internal/usecase/dto"
)

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Search(ctx context.Context, f domain.FilterRequest) ([]*domain.SearchItem, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]*domain.SearchItem), args.Error(1)
}

func (m *MockSearcher) QuickSearch(ctx context.Context, q string, limit int) ([]*domain.SearchItem, error) {
	args := m.Called(ctx, q, limit)
	return args.Get(0).([]*domain.SearchItem), args.Error(1)
}

func (m *MockSearcher) Viewport(ctx context.Context, box domain.BoundingBox, limit int) ([]*domain.SearchItem, error) {
	args := m.Called(ctx, box, limit)
	return args.Get(0).([]*domain.SearchItem), args.Error(1)
}

func (m *MockSearcher) ViewportLimit(limit int) int {
	args := m.Called(limit)
	return args.Int(0)
}

type MockFacetLister struct {
	mock.Mock
}

func (m *MockFacetLister) ListFacets(ctx context.Context) (*domain.Facets, error) {
	args := m.Called(ctx)
	return args.Get(0).(*domain.Facets), args.Error(1)
}

type MockInfrastructureReader struct {
	mock.Mock
}

func (m *MockInfrastructureReader) GetDetail(ctx context.Context, id, viewerID string) (*domain.InfrastructureDetail, error) {
	args := m.Called(ctx, id, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InfrastructureDetail), args.Error(1)
}

func (m *MockInfrastructureReader) GetAvailability(ctx context.Context, req dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AvailabilityResponse), args.Error(1)
}

type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *errors.AppError `json:"error"`
	Meta  map[string]any   `json:"meta"`
}

func do(t *testing.T, app *fiber.App, method, target, body string) (int, envelope) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func f64(v float64) *float64 { return &v }

func searchApp(s *MockSearcher) *fiber.App {
	h := handler.NewSearchHandler(s, zap.NewNop())
	app := fiber.New()
	app.Post("/search", h.Search)
	app.Get("/search", h.QuickSearch)
	app.Get("/infrastructures", h.Viewport)
	return app
}

func TestSearchHandler_Search(t *testing.T) {
	t.Run("maps body to filter", func(t *testing.T) {
		s := &MockSearcher{}
		s.On("Search", mock.Anything, mock.MatchedBy(func(f domain.FilterRequest) bool {
			return f.Query == "gym" &&
				assert.ObjectsAreEqual([]string{"Gymnase"}, f.RoomTypes) &&
				f.Center != nil && f.Center.Lat == 45.75 && f.RadiusKm == 2 &&
				f.DateFrom != nil && f.DateFrom.Weekday().String() == "Monday"
		})).Return([]*domain.SearchItem{{ID: "gym-basket", Lat: f64(45.75), Lon: f64(4.85), DistanceKm: f64(0)}}, nil)

		status, env := do(t, searchApp(s), "POST", "/search",
			`{"q":"gym","pieces":["Gymnase"],"distanceKm":2,"centerLat":45.75,"centerLon":4.85,"dateFrom":"2025-07-14"}`)

		assert.Equal(t, 200, status)
		assert.JSONEq(t, `[{"id":"gym-basket","name":"","address":"","lat":45.75,"lon":4.85,"distanceKm":0}]`, string(env.Data))
		s.AssertExpectations(t)
	})

	t.Run("store failure keeps the list shape", func(t *testing.T) {
		s := &MockSearcher{}
		s.On("Search", mock.Anything, mock.Anything).
			Return([]*domain.SearchItem{}, errors.ErrUpstreamUnavailable.Wrap(context.DeadlineExceeded))

		status, env := do(t, searchApp(s), "POST", "/search", `{"q":"gym"}`)

		assert.Equal(t, 503, status)
		assert.JSONEq(t, `[]`, string(env.Data))
		require.NotNil(t, env.Error)
		assert.Equal(t, "UPSTREAM_UNAVAILABLE", env.Error.Code)
		assert.NotContains(t, env.Error.Message, "deadline")
	})

	t.Run("malformed body", func(t *testing.T) {
		s := &MockSearcher{}
		status, env := do(t, searchApp(s), "POST", "/search", `{"q":`)

		assert.Equal(t, 400, status)
		assert.JSONEq(t, `[]`, string(env.Data))
		s.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		s := &MockSearcher{}
		status, env := do(t, searchApp(s), "POST", "/search", `{"centerLat":123,"centerLon":0,"distanceKm":5}`)

		assert.Equal(t, 400, status)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	})

	t.Run("negative radius disables distance", func(t *testing.T) {
		s := &MockSearcher{}
		s.On("Search", mock.Anything, mock.MatchedBy(func(f domain.FilterRequest) bool {
			return f.Center != nil && f.RadiusKm == -5 && !f.DistanceEnabled()
		})).Return([]*domain.SearchItem{{ID: "gym-basket"}}, nil)

		status, env := do(t, searchApp(s), "POST", "/search", `{"centerLat":45.75,"centerLon":4.85,"distanceKm":-5}`)

		assert.Equal(t, 200, status)
		assert.Nil(t, env.Error)
		assert.Contains(t, string(env.Data), `"gym-basket"`)
		s.AssertExpectations(t)
	})

	t.Run("bad date", func(t *testing.T) {
		s := &MockSearcher{}
		status, env := do(t, searchApp(s), "POST", "/search", `{"dateFrom":"14/07/2025"}`)

		assert.Equal(t, 400, status)
		assert.Equal(t, "INVALID_DATE_RANGE", env.Error.Code)
	})
}

func TestSearchHandler_QuickSearch(t *testing.T) {
	s := &MockSearcher{}
	s.On("QuickSearch", mock.Anything, "dojo", 5).Return([]*domain.SearchItem{{ID: "dojo", Name: "Dojo Municipal"}}, nil)

	status, env := do(t, searchApp(s), "GET", "/search?q=dojo&limit=5", "")

	assert.Equal(t, 200, status)
	assert.Contains(t, string(env.Data), `"dojo"`)
	assert.EqualValues(t, 1, env.Meta["total"])
}

func TestSearchHandler_Viewport(t *testing.T) {
	t.Run("dateline box", func(t *testing.T) {
		s := &MockSearcher{}
		box := domain.BoundingBox{North: 0, South: -30, East: -170, West: 170}
		s.On("Viewport", mock.Anything, box, 0).Return([]*domain.SearchItem{{ID: "fiji-east"}}, nil)
		s.On("ViewportLimit", 0).Return(100)

		status, _ := do(t, searchApp(s), "GET", "/infrastructures?north=0&south=-30&east=-170&west=170", "")

		assert.Equal(t, 200, status)
		s.AssertExpectations(t)
	})

	t.Run("meta reports the applied limit", func(t *testing.T) {
		s := &MockSearcher{}
		box := domain.BoundingBox{North: 46, South: 45, East: 5, West: 4}
		s.On("Viewport", mock.Anything, box, 1000).Return([]*domain.SearchItem{{ID: "gym-basket"}}, nil)
		s.On("ViewportLimit", 1000).Return(100)

		status, env := do(t, searchApp(s), "GET", "/infrastructures?north=46&south=45&east=5&west=4&limit=1000", "")

		assert.Equal(t, 200, status)
		assert.EqualValues(t, 100, env.Meta["limit"])
		assert.EqualValues(t, 1, env.Meta["total"])
	})

	for _, target := range []string{
		"/infrastructures?north=1&south=0&east=1",
		"/infrastructures?north=NaN&south=0&east=1&west=0",
		"/infrastructures?north=Inf&south=0&east=1&west=0",
		"/infrastructures?north=abc&south=0&east=1&west=0",
		"/infrastructures?north=95&south=0&east=1&west=0",
	} {
		t.Run(target, func(t *testing.T) {
			s := &MockSearcher{}
			status, env := do(t, searchApp(s), "GET", target, "")

			assert.Equal(t, 400, status)
			assert.JSONEq(t, `[]`, string(env.Data))
			assert.Equal(t, "INVALID_BBOX", env.Error.Code)
			s.AssertNotCalled(t, "Viewport", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestFilterHandler(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		l := &MockFacetLister{}
		l.On("ListFacets", mock.Anything).Return(&domain.Facets{
			RoomTypes:          []string{"Dojo", "Gymnase"},
			EquipmentTypes:     []string{},
			AccessibilityTypes: []string{},
			MaxCapacity:        35000,
		}, nil)
		app := fiber.New()
		app.Get("/filters", handler.NewFilterHandler(l, zap.NewNop()).GetFilters)

		status, env := do(t, app, "GET", "/filters", "")

		assert.Equal(t, 200, status)
		assert.JSONEq(t, `{"pieces":["Dojo","Gymnase"],"equipements":[],"accessibilites":[],"jaugeMax":35000}`, string(env.Data))
	})

	t.Run("store unavailable", func(t *testing.T) {
		l := &MockFacetLister{}
		l.On("ListFacets", mock.Anything).Return(domain.EmptyFacets(), errors.ErrUpstreamUnavailable)
		app := fiber.New()
		app.Get("/filters", handler.NewFilterHandler(l, zap.NewNop()).GetFilters)

		status, env := do(t, app, "GET", "/filters", "")

		assert.Equal(t, 503, status)
		assert.JSONEq(t, `{"pieces":[],"equipements":[],"accessibilites":[],"jaugeMax":0}`, string(env.Data))
	})
}

func TestInfrastructureHandler(t *testing.T) {
	newApp := func(r *MockInfrastructureReader) *fiber.App {
		h := handler.NewInfrastructureHandler(r, zap.NewNop())
		app := fiber.New()
		app.Get("/infrastructures/:id", h.GetDetail)
		app.Get("/infrastructures/:id/availability", h.GetAvailability)
		return app
	}

	t.Run("detail", func(t *testing.T) {
		r := &MockInfrastructureReader{}
		note := "Travaux"
		r.On("GetDetail", mock.Anything, "gym-basket", "").Return(&domain.InfrastructureDetail{
			Infrastructure: domain.Infrastructure{ID: "gym-basket", Name: "Gymnase Jean Jaurès", InService: true},
			Information:    &note,
		}, nil)

		status, env := do(t, newApp(r), "GET", "/infrastructures/gym-basket", "")

		assert.Equal(t, 200, status)
		assert.Contains(t, string(env.Data), `"informations":"Travaux"`)
	})

	t.Run("forbidden and not found", func(t *testing.T) {
		r := &MockInfrastructureReader{}
		r.On("GetDetail", mock.Anything, "piscine", "").Return(nil, errors.ErrForbidden)
		r.On("GetDetail", mock.Anything, "missing", "").Return(nil, errors.ErrInfrastructureNotFound)

		status, env := do(t, newApp(r), "GET", "/infrastructures/piscine", "")
		assert.Equal(t, 403, status)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)

		status, env = do(t, newApp(r), "GET", "/infrastructures/missing", "")
		assert.Equal(t, 404, status)
		assert.Equal(t, "INFRASTRUCTURE_NOT_FOUND", env.Error.Code)
	})

	t.Run("availability", func(t *testing.T) {
		r := &MockInfrastructureReader{}
		available := true
		r.On("GetAvailability", mock.Anything, dto.AvailabilityRequest{ID: "gym-only", From: "2025-07-14"}).
			Return(&dto.AvailabilityResponse{
				ID:         "gym-only",
				Weekdays:   []string{"TUESDAY"},
				Exceptions: []domain.ScheduleException{},
				Available:  &available,
			}, nil)

		status, env := do(t, newApp(r), "GET", "/infrastructures/gym-only/availability?from=2025-07-14", "")

		assert.Equal(t, 200, status)
		assert.JSONEq(t, `{"id":"gym-only","jours":["TUESDAY"],"exceptions":[],"available":true}`, string(env.Data))
	})
}

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.ErrUpstreamUnavailable }

	app := fiber.New()
	app.Get("/ok", handler.NewHealthHandler(map[string]handler.HealthCheck{"database": ok}, zap.NewNop()).Health)
	app.Get("/down", handler.NewHealthHandler(map[string]handler.HealthCheck{"database": ok, "redis": down}, zap.NewNop()).Health)

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/down", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "unhealthy", body.Services["redis"])
}
