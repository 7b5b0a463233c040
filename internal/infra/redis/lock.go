// File: internal/infra/redis/lock.go
package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"referral-backend/internal/domain"
	"referral-backend/internal/domain/ports/lock"
)

var _ lock.Locker = (*Locker)(nil)

// Locker is a SetNX lock shared across instances. The TTL bounds how long a
// crashed holder can block others; live holders finish their load-modify-save
// well inside it.
type Locker struct {
	cli *redis.Client
	ttl time.Duration
}

func NewLocker(c *Client, ttl time.Duration) *Locker {
	return &Locker{cli: c.cli, ttl: ttl}
}

// Lock retries until the key is acquired or ctx expires. Mutations must
// serialize rather than fail under contention, so there is no bounded retry
// count; the caller's context is the deadline.
func (l *Locker) Lock(ctx context.Context, key string) (string, error) {
	token := uuid.NewString()
	for {
		ok, err := l.cli.SetNX(ctx, key, token, l.ttl).Result()
		if err == nil && ok {
			return token, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

var luaUnlock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`)

func (l *Locker) Unlock(ctx context.Context, key, token string) error {
	res, err := luaUnlock.Run(ctx, l.cli, []string{key}, token).Result()
	if err != nil {
		return err
	}
	if n, ok := res.(int64); ok && n == 0 {
		return domain.ErrLockNotHeld
	}
	return nil
}
