package lock

import "context"

// Locker serializes load-modify-save cycles on a named collection.
// Lock blocks until the lock is acquired or ctx expires; the returned token
// fences the matching Unlock. At most one holder per key at a time.
type Locker interface {
	Lock(ctx context.Context, key string) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}
