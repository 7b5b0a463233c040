// File: internal/infra/locking/memory.go
package locking

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"referral-backend/internal/domain"
	"referral-backend/internal/domain/ports/lock"
)

// Ensure implementation satisfies the interface.
var _ lock.Locker = (*MemoryLocker)(nil)

// MemoryLocker serializes collection mutations within a single process.
// It is the default locker; deployments running more than one instance
// against the same store must use the redis locker instead.
type MemoryLocker struct {
	mu     sync.Mutex
	sems   map[string]chan struct{}
	tokens map[string]string
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		sems:   make(map[string]chan struct{}),
		tokens: make(map[string]string),
	}
}

func (l *MemoryLocker) sem(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.sems[key]
	if !ok {
		s = make(chan struct{}, 1)
		l.sems[key] = s
	}
	return s
}

// Lock blocks until the key is free or ctx expires.
func (l *MemoryLocker) Lock(ctx context.Context, key string) (string, error) {
	select {
	case l.sem(key) <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	token := uuid.NewString()
	l.mu.Lock()
	l.tokens[key] = token
	l.mu.Unlock()
	return token, nil
}

func (l *MemoryLocker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	held, ok := l.tokens[key]
	if !ok || held != token {
		l.mu.Unlock()
		return domain.ErrLockNotHeld
	}
	delete(l.tokens, key)
	sem := l.sems[key]
	l.mu.Unlock()

	<-sem
	return nil
}
