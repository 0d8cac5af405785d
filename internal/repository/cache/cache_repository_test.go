package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Reciclaria/reciclar.ia/internal/domain"
	"github.com/Reciclaria/reciclar.ia/internal/repository/cache"
)

func TestCacheRepository_Schedule(t *testing.T) {
	r := getTestRedis(t)
	repo := cache.NewCacheRepository(r)
	ctx := context.Background()

	t.Run("set then get returns the stored schedule", func(t *testing.T) {
		cell := testIdentity(t)
		defer r.Client().Del(ctx, "schedule:"+cell)

		schedule := &domain.CollectionSchedule{
			Provider: "loga",
			Regular: []domain.DaySchedule{
				{Day: domain.Segunda, Hours: "07:00"},
				{Day: domain.Quinta, Hours: "07:00"},
			},
			Selective: []domain.DaySchedule{
				{Day: domain.Sabado, Hours: "13:00"},
			},
		}

		require.NoError(t, repo.SetSchedule(ctx, cell, schedule, time.Minute))

		got, err := repo.GetSchedule(ctx, cell)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, schedule, got)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		got, err := repo.GetSchedule(ctx, testIdentity(t))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("entry expires with the TTL", func(t *testing.T) {
		cell := testIdentity(t)

		schedule := &domain.CollectionSchedule{Provider: "ecourbis"}
		require.NoError(t, repo.SetSchedule(ctx, cell, schedule, 100*time.Millisecond))

		time.Sleep(200 * time.Millisecond)

		got, err := repo.GetSchedule(ctx, cell)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
