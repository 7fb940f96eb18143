package queue

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory Store used by tests across packages that depend on
// Store (worker, ingress, regions) so they can exercise real sorted-set and TTL
// semantics without a live Redis instance.
type MemStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	zsets   map[string][]memMember
	counter int64
}

type memMember struct {
	member []byte
	score  float64
	seq    int64
}

// NewMemStore constructs an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[string][]byte),
		zsets:  make(map[string][]memMember),
	}
}

func (s *MemStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

// SetTTL ignores ttl: tests exercise TTL expiry, if at all, by explicitly
// calling Del rather than waiting on a real clock.
func (s *MemStore) SetTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.Set(ctx, key, value)
}

func (s *MemStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemStore) ZAdd(ctx context.Context, key string, score float64, member []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := s.zsets[key]
	for i, m := range members {
		if bytes.Equal(m.member, member) {
			members[i].score = score
			return nil
		}
	}
	s.counter++
	s.zsets[key] = append(members, memMember{member: member, score: score, seq: s.counter})
	return nil
}

func (s *MemStore) ZRem(ctx context.Context, key string, member []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := s.zsets[key]
	for i, m := range members {
		if bytes.Equal(m.member, member) {
			s.zsets[key] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemStore) ZRange(ctx context.Context, key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := append([]memMember(nil), s.zsets[key]...)
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].score != members[j].score {
			return members[i].score < members[j].score
		}
		return members[i].seq < members[j].seq
	})
	out := make([][]byte, len(members))
	for i, m := range members {
		out[i] = m.member
	}
	return out, nil
}
