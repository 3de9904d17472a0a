package memory

import (
	"context"
	"sync"

	"pet-qr-tags/internal/ports/session"
)

type sessionStore struct {
	mu     sync.Mutex
	values map[string]map[string]string
}

func NewSessionStore() session.Store {
	return &sessionStore{values: make(map[string]map[string]string)}
}

func (s *sessionStore) Get(ctx context.Context, deviceID string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.values[deviceID]))
	for k, v := range s.values[deviceID] {
		out[k] = v
	}
	return out, nil
}

func (s *sessionStore) Set(ctx context.Context, deviceID string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.values[deviceID]
	if !ok {
		m = make(map[string]string, len(values))
		s.values[deviceID] = m
	}
	for k, v := range values {
		m[k] = v
	}
	return nil
}

func (s *sessionStore) Del(ctx context.Context, deviceID string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.values[deviceID]
	for _, k := range keys {
		delete(m, k)
	}
	return nil
}
