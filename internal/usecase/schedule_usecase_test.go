package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/domain/repository"
	"github.com/Reciclaria/reciclar.ia/internal/geoindex"
	"github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
	"github.com/Reciclaria/reciclar.ia/internal/usecase"
)

// MockCacheRepository - mock do repositório de cache
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

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetSchedule(ctx context.Context, cell string) (*domain.CollectionSchedule, error) {
	args := m.Called(ctx, cell)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionSchedule), args.Error(1)
}

func (m *MockCacheRepository) SetSchedule(ctx context.Context, cell string, schedule *domain.CollectionSchedule, ttl time.Duration) error {
	args := m.Called(ctx, cell, schedule, ttl)
	return args.Error(0)
}

// stubProvider - provedor de teste com comportamento programável
type stubProvider struct {
	name     string
	schedule *domain.CollectionSchedule
	err      error
	delay    time.Duration
	calls    int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Fetch(ctx context.Context, _ domain.LatLon) (*domain.CollectionSchedule, error) {
	p.calls++
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.schedule, nil
}

func validSchedule(provider string) *domain.CollectionSchedule {
	return &domain.CollectionSchedule{
		Provider: provider,
		Regular: []domain.DaySchedule{
			{Day: domain.Segunda, Hours: "07:00"},
			{Day: domain.Quarta, Hours: "07:00"},
		},
	}
}

func newScheduleUseCase(
	providers []repository.ScheduleProvider,
	cacheRepo repository.CacheRepository,
	requestTimeout, overallDeadline time.Duration,
) *usecase.ScheduleUseCase {
	index := geoindex.New(zap.NewNop())
	return usecase.NewScheduleUseCase(
		providers, cacheRepo, index, zap.NewNop(),
		requestTimeout, overallDeadline, time.Hour,
	)
}

func TestScheduleUseCase_FetchSchedule(t *testing.T) {
	ctx := context.Background()
	coord := domain.LatLon{Lat: -23.5505, Lng: -46.6333}

	t.Run("first usable provider wins, earlier failures absorbed", func(t *testing.T) {
		failing := &stubProvider{name: "loga", err: stderrors.New("connection refused")}
		empty := &stubProvider{name: "ecourbis", schedule: &domain.CollectionSchedule{Provider: "ecourbis"}}
		ok := &stubProvider{name: "backup", schedule: validSchedule("backup")}

		cache := new(MockCacheRepository)
		cache.On("GetSchedule", mock.Anything, mock.Anything).Return(nil, nil)
		cache.On("SetSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		uc := newScheduleUseCase(
			[]repository.ScheduleProvider{failing, empty, ok},
			cache, time.Second, 5*time.Second,
		)

		schedule, err := uc.FetchSchedule(ctx, coord)
		require.NoError(t, err)
		require.NotNil(t, schedule)

		assert.Equal(t, "backup", schedule.Provider)
		assert.Equal(t, 1, failing.calls)
		assert.Equal(t, 1, empty.calls)
		assert.Equal(t, 1, ok.calls)
	})

	t.Run("providers are consulted in configured order", func(t *testing.T) {
		first := &stubProvider{name: "loga", schedule: validSchedule("loga")}
		second := &stubProvider{name: "ecourbis", schedule: validSchedule("ecourbis")}

		cache := new(MockCacheRepository)
		cache.On("GetSchedule", mock.Anything, mock.Anything).Return(nil, nil)
		cache.On("SetSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		uc := newScheduleUseCase(
			[]repository.ScheduleProvider{first, second},
			cache, time.Second, 5*time.Second,
		)

		schedule, err := uc.FetchSchedule(ctx, coord)
		require.NoError(t, err)

		assert.Equal(t, "loga", schedule.Provider)
		assert.Equal(t, 0, second.calls)
	})

	t.Run("all providers exhausted", func(t *testing.T) {
		failing := &stubProvider{name: "loga", err: stderrors.New("boom")}
		empty := &stubProvider{name: "ecourbis", schedule: &domain.CollectionSchedule{Provider: "ecourbis"}}

		cache := new(MockCacheRepository)
		cache.On("GetSchedule", mock.Anything, mock.Anything).Return(nil, nil)

		uc := newScheduleUseCase(
			[]repository.ScheduleProvider{failing, empty},
			cache, time.Second, 5*time.Second,
		)

		_, err := uc.FetchSchedule(ctx, coord)
		assert.ErrorIs(t, err, errors.ErrScheduleNotFound)
	})

	t.Run("aggregate deadline cuts a slow chain", func(t *testing.T) {
		slow := &stubProvider{name: "loga", delay: time.Second, schedule: validSchedule("loga")}
		never := &stubProvider{name: "ecourbis", schedule: validSchedule("ecourbis")}

		cache := new(MockCacheRepository)
		cache.On("GetSchedule", mock.Anything, mock.Anything).Return(nil, nil)

		uc := newScheduleUseCase(
			[]repository.ScheduleProvider{slow, never},
			cache, time.Second, 50*time.Millisecond,
		)

		_, err := uc.FetchSchedule(ctx, coord)
		assert.ErrorIs(t, err, errors.ErrScheduleTimeout)
		assert.Equal(t, 0, never.calls)
	})

	t.Run("per-provider timeout only skips the slow provider", func(t *testing.T) {
		slow := &stubProvider{name: "loga", delay: 500 * time.Millisecond, schedule: validSchedule("loga")}
		fast := &stubProvider{name: "ecourbis", schedule: validSchedule("ecourbis")}

		cache := new(MockCacheRepository)
		cache.On("GetSchedule", mock.Anything, mock.Anything).Return(nil, nil)
		cache.On("SetSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		uc := newScheduleUseCase(
			[]repository.ScheduleProvider{slow, fast},
			cache, 50*time.Millisecond, 5*time.Second,
		)

		schedule, err := uc.FetchSchedule(ctx, coord)
		require.NoError(t, err)
		assert.Equal(t, "ecourbis", schedule.Provider)
	})

	t.Run("cache hit skips the providers", func(t *testing.T) {
		provider := &stubProvider{name: "loga", schedule: validSchedule("loga")}
		cached := validSchedule("ecourbis")

		cache := new(MockCacheRepository)
		cache.On("GetSchedule", mock.Anything, mock.Anything).Return(cached, nil)

		uc := newScheduleUseCase(
			[]repository.ScheduleProvider{provider},
			cache, time.Second, 5*time.Second,
		)

		schedule, err := uc.FetchSchedule(ctx, coord)
		require.NoError(t, err)
		assert.Equal(t, "ecourbis", schedule.Provider)
		assert.Equal(t, 0, provider.calls)
	})

	t.Run("cache failure degrades to the provider chain", func(t *testing.T) {
		provider := &stubProvider{name: "loga", schedule: validSchedule("loga")}

		cache := new(MockCacheRepository)
		cache.On("GetSchedule", mock.Anything, mock.Anything).Return(nil, errors.ErrCacheError)
		cache.On("SetSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.ErrCacheError)

		uc := newScheduleUseCase(
			[]repository.ScheduleProvider{provider},
			cache, time.Second, 5*time.Second,
		)

		schedule, err := uc.FetchSchedule(ctx, coord)
		require.NoError(t, err)
		assert.Equal(t, "loga", schedule.Provider)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		uc := newScheduleUseCase(nil, new(MockCacheRepository), time.Second, time.Second)

		_, err := uc.FetchSchedule(ctx, domain.LatLon{Lat: 95, Lng: 0})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})
}
