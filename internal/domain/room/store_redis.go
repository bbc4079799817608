package room

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs a relay direction with Redis, using native key TTLs
// instead of a sweep loop. Selected when REDIS_URL is configured so that
// multiple server instances can share room state.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, direction string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "room:" + direction + ":",
		ttl:    ttl,
	}
}

type redisEntry struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *RedisStore) Set(ctx context.Context, key, text string) error {
	payload, err := json.Marshal(redisEntry{Text: text, UpdatedAt: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal room entry: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("unmarshal room entry: %w", err)
	}
	return &Entry{Key: key, Text: e.Text, UpdatedAt: e.UpdatedAt}, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
