package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisCounter(t *testing.T) *RedisCounterStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisCounterStore(client)
}

func TestRedisCounterStore_Get_ZeroWithoutKey(t *testing.T) {
	store := setupRedisCounter(t)

	total, err := store.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected 0 for a user with no counter, got %d", total)
	}
}

func TestRedisCounterStore_UpsertIncrement(t *testing.T) {
	store := setupRedisCounter(t)

	for want := 1; want <= 5; want++ {
		total, err := store.UpsertIncrement(context.Background(), 42)
		if err != nil {
			t.Fatalf("UpsertIncrement() failed: %v", err)
		}
		if total != want {
			t.Errorf("Expected total %d, got %d", want, total)
		}
	}

	total, err := store.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
}

func TestRedisCounterStore_IndependentUsers(t *testing.T) {
	store := setupRedisCounter(t)

	if _, err := store.UpsertIncrement(context.Background(), 1); err != nil {
		t.Fatalf("UpsertIncrement() failed: %v", err)
	}

	total, err := store.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if total != 0 {
		t.Errorf("Expected user 2's counter to stay 0, got %d", total)
	}
}
