package redis

import (
	"context"
	"time"

	"pet-qr-tags/internal/ports/session"

	goredis "github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionStore guarda cada dispositivo como un hash. Cada escritura
// renueva el TTL.
type SessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewSessionStore(client *goredis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, deviceID string) (map[string]string, error) {
	return s.client.HGetAll(ctx, sessionPrefix+deviceID).Result()
}

func (s *SessionStore) Set(ctx context.Context, deviceID string, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	key := sessionPrefix + deviceID
	fields := make(map[string]any, len(values))
	for k, v := range values {
		fields[k] = v
	}

	_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.HSet(ctx, key, fields)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

func (s *SessionStore) Del(ctx context.Context, deviceID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.HDel(ctx, sessionPrefix+deviceID, keys...).Err()
}
