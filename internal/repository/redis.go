package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storebot/internal/config"
	"storebot/internal/models"

	"github.com/redis/go-redis/v9"
)

var errNoRedisClient = errors.New("redis client is not configured")

// RedisStateRepository is the primary conversation-state repository. State
// entries expire after ttl so an abandoned item creation cleans itself up.
type RedisStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisStateRepository(client *redis.Client, ttl time.Duration) *RedisStateRepository {
	return &RedisStateRepository{
		client: client,
		ttl:    ttl,
	}
}

// ready reports whether the repository has a client to talk to. A nil client
// is normal when Redis is not configured; the failover wrapper then routes
// everything to memory.
func (r *RedisStateRepository) ready() error {
	if r == nil || r.client == nil {
		return errNoRedisClient
	}
	return nil
}

func stateKey(userID int64) string {
	return fmt.Sprintf("pending_post:%d", userID)
}

func rateKey(userID int64) string {
	return fmt.Sprintf("rate_limit:%d", userID)
}

func (r *RedisStateRepository) GetState(ctx context.Context, userID int64) (*models.UserState, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	val, err := r.client.Get(ctx, stateKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get state: %w", err)
	}

	var state models.UserState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("redis: decode state: %w", err)
	}
	return &state, nil
}

func (r *RedisStateRepository) SetState(ctx context.Context, state *models.UserState) error {
	if err := r.ready(); err != nil {
		return err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("redis: encode state: %w", err)
	}
	if err := r.client.Set(ctx, stateKey(state.UserID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set state: %w", err)
	}
	return nil
}

func (r *RedisStateRepository) ClearState(ctx context.Context, userID int64) error {
	if err := r.ready(); err != nil {
		return err
	}

	if err := r.client.Del(ctx, stateKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis: clear state: %w", err)
	}
	return nil
}

// CheckRateLimit counts messages in a fixed window: INCR plus EXPIRE on the
// first hit. The result only says whether this message is still inside the
// limit.
func (r *RedisStateRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if err := r.ready(); err != nil {
		return false, err
	}

	count, err := r.client.Incr(ctx, rateKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis: rate limit incr: %w", err)
	}
	if count == 1 {
		r.client.Expire(ctx, rateKey(userID), window)
	}
	return count <= int64(limit), nil
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
