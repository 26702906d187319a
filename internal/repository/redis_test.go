package repository

import (
	"context"
	"testing"
	"time"

	"storebot/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRepo(t *testing.T) (*RedisStateRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStateRepository(client, time.Hour), mr
}

func TestRedisStateRoundTrip(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	ctx := context.Background()

	state, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, state)

	want := &models.UserState{
		UserID:      1,
		CurrentStep: models.StateAwaitingDescription,
		TempData:    map[string]interface{}{models.TempPhotoID: "photo-1"},
	}
	require.NoError(t, repo.SetState(ctx, want))

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, models.StateAwaitingDescription, got.CurrentStep)
	assert.Equal(t, "photo-1", got.GetString(models.TempPhotoID))

	require.NoError(t, repo.ClearState(ctx, 1))
	got, err = repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStateExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewRedisStateRepository(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.SetState(ctx, &models.UserState{UserID: 1, CurrentStep: models.StateAwaitingPrice}))

	mr.FastForward(2 * time.Minute)

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisRateLimit(t *testing.T) {
	repo, mr := newTestRedisRepo(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 1, 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := repo.CheckRateLimit(ctx, 1, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Новое окно после истечения ключа.
	mr.FastForward(2 * time.Minute)

	allowed, err = repo.CheckRateLimit(ctx, 1, 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisNilClient(t *testing.T) {
	repo := NewRedisStateRepository(nil, time.Hour)
	ctx := context.Background()

	_, err := repo.GetState(ctx, 1)
	assert.Error(t, err)

	err = repo.SetState(ctx, &models.UserState{UserID: 1})
	assert.Error(t, err)

	err = repo.ClearState(ctx, 1)
	assert.Error(t, err)

	_, err = repo.CheckRateLimit(ctx, 1, 1, time.Minute)
	assert.Error(t, err)
}
