package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Reciclaria/reciclar.ia/internal/pkg/errors"
	"github.com/Reciclaria/reciclar.ia/internal/usecase"
)

// MockQuotaRepository - mock do repositório de cota
type MockQuotaRepository struct {
	mock.Mock
}

func (m *MockQuotaRepository) Admit(ctx context.Context, identity string, limit int64) (bool, int64, error) {
	args := m.Called(ctx, identity, limit)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}

// memQuotaRepository - contador em memória com a mesma semântica do script
// Lua: check-and-increment sob um único lock, contador fixado no limite.
type memQuotaRepository struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemQuotaRepository() *memQuotaRepository {
	return &memQuotaRepository{counts: make(map[string]int64)}
}

func (r *memQuotaRepository) Admit(_ context.Context, identity string, limit int64) (bool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := r.counts[identity]
	if count >= limit {
		return false, count, nil
	}
	count++
	r.counts[identity] = count
	return true, count, nil
}

func TestQuotaUseCase_Admit(t *testing.T) {
	ctx := context.Background()

	t.Run("counter pins at the limit", func(t *testing.T) {
		uc := usecase.NewQuotaUseCase(newMemQuotaRepository(), zap.NewNop(), 10)

		// limite 2: duas admissões, depois só negações com contador fixo
		admitted, rec, err := uc.Admit(ctx, "user-1", 2)
		require.NoError(t, err)
		assert.True(t, admitted)
		assert.Equal(t, int64(1), rec.Count)

		admitted, rec, err = uc.Admit(ctx, "user-1", 2)
		require.NoError(t, err)
		assert.True(t, admitted)
		assert.Equal(t, int64(2), rec.Count)

		for i := 0; i < 2; i++ {
			admitted, rec, err = uc.Admit(ctx, "user-1", 2)
			require.NoError(t, err)
			assert.False(t, admitted)
			assert.Equal(t, int64(2), rec.Count)
		}
	})

	t.Run("identities are isolated", func(t *testing.T) {
		uc := usecase.NewQuotaUseCase(newMemQuotaRepository(), zap.NewNop(), 10)

		_, _, err := uc.Admit(ctx, "user-a", 1)
		require.NoError(t, err)

		admitted, rec, err := uc.Admit(ctx, "user-b", 1)
		require.NoError(t, err)
		assert.True(t, admitted)
		assert.Equal(t, int64(1), rec.Count)
	})

	t.Run("concurrent admits grant exactly the limit", func(t *testing.T) {
		uc := usecase.NewQuotaUseCase(newMemQuotaRepository(), zap.NewNop(), 10)

		const workers = 50
		const limit = int64(7)

		var wg sync.WaitGroup
		var admittedCount int64
		var mu sync.Mutex

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				admitted, _, err := uc.Admit(ctx, "shared", limit)
				assert.NoError(t, err)
				if admitted {
					mu.Lock()
					admittedCount++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, limit, admittedCount)

		_, rec, err := uc.Admit(ctx, "shared", limit)
		require.NoError(t, err)
		assert.Equal(t, limit, rec.Count)
	})

	t.Run("empty identity is rejected", func(t *testing.T) {
		repo := new(MockQuotaRepository)
		uc := usecase.NewQuotaUseCase(repo, zap.NewNop(), 10)

		_, _, err := uc.Admit(ctx, "", 5)
		assert.ErrorIs(t, err, errors.ErrInvalidRequest)
		repo.AssertNotCalled(t, "Admit")
	})

	t.Run("non-positive limit falls back to the default", func(t *testing.T) {
		repo := new(MockQuotaRepository)
		repo.On("Admit", mock.Anything, "user-1", int64(10)).Return(true, int64(1), nil)
		uc := usecase.NewQuotaUseCase(repo, zap.NewNop(), 10)

		admitted, rec, err := uc.Admit(ctx, "user-1", 0)
		require.NoError(t, err)
		assert.True(t, admitted)
		assert.Equal(t, int64(1), rec.Count)
		repo.AssertExpectations(t)
	})

	t.Run("storage error propagates without a verdict", func(t *testing.T) {
		repo := new(MockQuotaRepository)
		repo.On("Admit", mock.Anything, "user-1", int64(5)).
			Return(false, int64(0), errors.ErrStorageUnavailable)
		uc := usecase.NewQuotaUseCase(repo, zap.NewNop(), 10)

		admitted, rec, err := uc.Admit(ctx, "user-1", 5)
		assert.ErrorIs(t, err, errors.ErrStorageUnavailable)
		assert.False(t, admitted)
		assert.Nil(t, rec)
	})
}
