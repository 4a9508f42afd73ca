package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/infrastructure-search/internal/domain"
	"github.com/infrastructure-search/internal/query"
)

// MockInfrastructureRepository is a mock of InfrastructureRepository
type MockInfrastructureRepository struct {
	mock.Mock
}

func (m *MockInfrastructureRepository) Search(ctx context.Context, plan *query.Plan) ([]*domain.SearchItem, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SearchItem), args.Error(1)
}

func (m *MockInfrastructureRepository) ListSchedules(ctx context.Context, from, to time.Time) ([]domain.Schedule, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Schedule), args.Error(1)
}

func (m *MockInfrastructureRepository) ListFacets(ctx context.Context) (*domain.Facets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facets), args.Error(1)
}

func (m *MockInfrastructureRepository) GetByID(ctx context.Context, id string, asOf time.Time) (*domain.InfrastructureDetail, error) {
	args := m.Called(ctx, id, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InfrastructureDetail), args.Error(1)
}

func (m *MockInfrastructureRepository) GetSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockInfrastructureRepository) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheRepository) GetFacets(ctx context.Context) (*domain.Facets, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Facets), args.Error(1)
}

func (m *MockCacheRepository) SetFacets(ctx context.Context, facets *domain.Facets, ttl time.Duration) error {
	args := m.Called(ctx, facets, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteFacets(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func f64(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
