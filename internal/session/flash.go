// Package session carries one-shot flash messages across a
// post-redirect-get round trip.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Flash is shown once on the page a mutation redirects to.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Empty reports whether the flash carries no message.
func (f Flash) Empty() bool {
	return f.Success == "" && f.Error == ""
}

// FlashStore saves a flash for a page and principal and hands it out once.
type FlashStore interface {
	Put(ctx context.Context, key string, flash Flash) error
	Pop(ctx context.Context, key string) (Flash, error)
}

// Key scopes a flash to a page and the principal that caused it.
func Key(page, username string) string {
	return fmt.Sprintf("flash:%s:%s", page, username)
}

// RedisFlashStore keeps flashes in Redis with a TTL so abandoned ones expire.
type RedisFlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisFlashStore builds a store over client.
func NewRedisFlashStore(client *redis.Client, ttl time.Duration) *RedisFlashStore {
	return &RedisFlashStore{client: client, ttl: ttl}
}

func (s *RedisFlashStore) Put(ctx context.Context, key string, flash Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store flash: %w", err)
	}
	return nil
}

func (s *RedisFlashStore) Pop(ctx context.Context, key string) (Flash, error) {
	payload, err := s.client.GetDel(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Flash{}, nil
	}
	if err != nil {
		return Flash{}, fmt.Errorf("load flash: %w", err)
	}
	var flash Flash
	if err := json.Unmarshal(payload, &flash); err != nil {
		return Flash{}, fmt.Errorf("decode flash: %w", err)
	}
	return flash, nil
}

// MemoryFlashStore is the single-instance fallback used when Redis is not configured.
type MemoryFlashStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	flashes map[string]memoryFlash
}

type memoryFlash struct {
	flash   Flash
	expires time.Time
}

// NewMemoryFlashStore builds an in-process store.
func NewMemoryFlashStore(ttl time.Duration) *MemoryFlashStore {
	return &MemoryFlashStore{ttl: ttl, now: time.Now, flashes: make(map[string]memoryFlash)}
}

func (s *MemoryFlashStore) Put(_ context.Context, key string, flash Flash) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, v := range s.flashes {
		if now.After(v.expires) {
			delete(s.flashes, k)
		}
	}
	s.flashes[key] = memoryFlash{flash: flash, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryFlashStore) Pop(_ context.Context, key string) (Flash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.flashes[key]
	if !ok {
		return Flash{}, nil
	}
	delete(s.flashes, key)
	if s.now().After(stored.expires) {
		return Flash{}, nil
	}
	return stored.flash, nil
}
