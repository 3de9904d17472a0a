package memory

import (
	"context"
	"sync"
	"time"

	"pet-qr-tags/internal/domain/users"
)

type code struct {
	value     string
	expiresAt time.Time
}

type codeStore struct {
	mu    sync.Mutex
	codes map[string]code
	now   func() time.Time
}

func NewCodeStore() users.CodeStore {
	return &codeStore{codes: make(map[string]code), now: time.Now}
}

func (s *codeStore) SaveCode(ctx context.Context, username, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[username] = code{value: value, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *codeStore) ConsumeCode(ctx context.Context, username, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.codes[username]
	if !ok {
		return false, nil
	}
	if s.now().After(c.expiresAt) {
		delete(s.codes, username)
		return false, nil
	}
	if c.value != value {
		return false, nil
	}
	delete(s.codes, username)
	return true, nil
}
