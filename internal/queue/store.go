package queue

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key has no value (expired or never
// written) — matching spec.md §4.E's "silently skip" friend-lookup behavior.
var ErrNotFound = errors.New("queue: key not found")

// Store is the shared keyed store spec.md §1/§6 treats as an assumed
// collaborator: TTL-backed values, integer-scored sorted sets, and atomic
// add/remove. It is implemented here against Redis, reached over a single
// multiplexed connection (spec.md §5), but ingress/worker code depends only on
// this interface so a fake can stand in for tests.
type Store interface {
	// Get returns the value stored at key, or ErrNotFound if absent/expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetTTL writes value at key with the given expiry.
	SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Set writes value at key with no expiry (used for the regions key).
	Set(ctx context.Context, key string, value []byte) error
	// Del removes key. It is not an error for key to already be absent.
	Del(ctx context.Context, key string) error
	// ZAdd inserts member into the sorted set at key with the given score.
	// Re-adding a byte-identical member does not duplicate it (spec.md §7);
	// the existing member's score is set to the new score.
	ZAdd(ctx context.Context, key string, score float64, member []byte) error
	// ZRem removes the byte-identical member from the sorted set at key.
	ZRem(ctx context.Context, key string, member []byte) error
	// ZRange returns every member of the sorted set at key in ascending score
	// order. MemStore breaks same-score ties by insertion order; RedisStore
	// returns same-score members in Redis's order, which is lexicographic by
	// member bytes, not insertion order.
	ZRange(ctx context.Context, key string) ([][]byte, error)
}

// RedisStore is the production Store backed by a single go-redis client, which
// itself multiplexes every command over one connection pool shared across all
// ingress goroutines and the worker (spec.md §5 "connection multiplexing is a
// design requirement, not an implementation detail").
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an already-configured *redis.Client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *RedisStore) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) ZAdd(ctx context.Context, key string, score float64, member []byte) error {
	return s.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err()
}

func (s *RedisStore) ZRem(ctx context.Context, key string, member []byte) error {
	return s.client.ZRem(ctx, key, member).Err()
}

func (s *RedisStore) ZRange(ctx context.Context, key string) ([][]byte, error) {
	vals, err := s.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{Min: "-inf", Max: "+inf"}).Result()
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}
