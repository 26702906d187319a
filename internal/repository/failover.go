package repository

import (
	"context"
	"sync/atomic"
	"time"

	"storebot/internal/domain"
	"storebot/internal/models"

	"github.com/rs/zerolog"
)

// recoveryInterval is how long the failover waits before probing the primary
// repository again after it went down.
const recoveryInterval = time.Minute

// FailoverStateRepository serves from the primary repository (Redis) and
// falls back to the in-memory one when the primary errors. In-flight item
// creation survives a Redis blip, though state written during the outage
// stays in memory only.
type FailoverStateRepository struct {
	primary  domain.StateRepository
	fallback domain.StateRepository
	logger   *zerolog.Logger

	isDown    atomic.Bool
	downSince atomic.Int64
}

func NewFailoverStateRepository(primary, fallback domain.StateRepository, logger *zerolog.Logger) *FailoverStateRepository {
	return &FailoverStateRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverStateRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary state repository failed, falling back to memory")
	r.isDown.Store(true)
	r.downSince.Store(time.Now().UnixNano())
}

// primaryUp reports whether the primary should be tried: either it is
// healthy, or it has been down long enough to probe again.
func (r *FailoverStateRepository) primaryUp() bool {
	if !r.isDown.Load() {
		return true
	}
	if time.Since(time.Unix(0, r.downSince.Load())) > recoveryInterval {
		r.downSince.Store(time.Now().UnixNano())
		return true
	}
	return false
}

func (r *FailoverStateRepository) GetState(ctx context.Context, userID int64) (*models.UserState, error) {
	if r.primaryUp() {
		state, err := r.primary.GetState(ctx, userID)
		if err == nil {
			r.isDown.Store(false)
			return state, nil
		}
		r.markDown(err)
	}
	return r.fallback.GetState(ctx, userID)
}

func (r *FailoverStateRepository) SetState(ctx context.Context, state *models.UserState) error {
	if r.primaryUp() {
		err := r.primary.SetState(ctx, state)
		if err == nil {
			r.isDown.Store(false)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.SetState(ctx, state)
}

func (r *FailoverStateRepository) ClearState(ctx context.Context, userID int64) error {
	if r.primaryUp() {
		err := r.primary.ClearState(ctx, userID)
		if err == nil {
			r.isDown.Store(false)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.ClearState(ctx, userID)
}

func (r *FailoverStateRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if r.primaryUp() {
		allowed, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		if err == nil {
			r.isDown.Store(false)
			return allowed, nil
		}
		r.markDown(err)
	}
	return r.fallback.CheckRateLimit(ctx, userID, limit, window)
}
