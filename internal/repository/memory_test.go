package repository

import (
	"context"
	"testing"
	"time"

	"storebot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateRepository(t *testing.T) {
	repo := NewMemoryStateRepository(time.Hour)
	ctx := context.Background()

	state, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, state)

	want := &models.UserState{
		UserID:      1,
		CurrentStep: models.StateAwaitingPhoto,
		TempData:    map[string]interface{}{models.TempPhotoID: "photo-1"},
	}
	require.NoError(t, repo.SetState(ctx, want))

	got, err := repo.GetState(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StateAwaitingPhoto, got.CurrentStep)
	assert.Equal(t, "photo-1", got.GetString(models.TempPhotoID))

	require.NoError(t, repo.ClearState(ctx, 1))
	got, err = repo.GetState(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryRateLimit(t *testing.T) {
	repo := NewMemoryStateRepository(time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 1, 3, time.Hour)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := repo.CheckRateLimit(ctx, 1, 3, time.Hour)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Счётчики разных пользователей независимы.
	allowed, err = repo.CheckRateLimit(ctx, 2, 3, time.Hour)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryRateLimitWindowExpires(t *testing.T) {
	repo := NewMemoryStateRepository(time.Hour)
	ctx := context.Background()

	window := 30 * time.Millisecond
	allowed, err := repo.CheckRateLimit(ctx, 1, 1, window)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = repo.CheckRateLimit(ctx, 1, 1, window)
	require.NoError(t, err)
	assert.False(t, allowed)

	time.Sleep(window + 10*time.Millisecond)

	allowed, err = repo.CheckRateLimit(ctx, 1, 1, window)
	require.NoError(t, err)
	assert.True(t, allowed)
}
