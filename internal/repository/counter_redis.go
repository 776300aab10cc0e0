package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore is the Redis-backed daily counter store. INCR gives the
// same atomic create-or-increment guarantee the database upsert does.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a counter store on an existing Redis client.
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func counterKey(userID uint) string {
	return fmt.Sprintf("five_a_day:%d", userID)
}

// Get returns the user's review count, 0 when the key does not exist.
func (s *RedisCounterStore) Get(ctx context.Context, userID uint) (int, error) {
	total, err := s.client.Get(ctx, counterKey(userID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get daily count for user %d: %w", userID, err)
	}
	return total, nil
}

// UpsertIncrement atomically increments the user's counter, creating it at 1
// on first use. Returns the new total.
func (s *RedisCounterStore) UpsertIncrement(ctx context.Context, userID uint) (int, error) {
	total, err := s.client.Incr(ctx, counterKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment daily count for user %d: %w", userID, err)
	}
	return int(total), nil
}
