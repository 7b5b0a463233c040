//go:build !integration

// File: internal/infra/locking/memory_test.go
package locking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"referral-backend/internal/domain"
)

func TestMemoryLocker_MutualExclusion(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	const n = 50
	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := l.Lock(ctx, "codes")
			if err != nil {
				t.Errorf("Lock failed: %v", err)
				return
			}
			// Unsynchronized increment; the lock is the only protection.
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
			if err := l.Unlock(ctx, "codes", token); err != nil {
				t.Errorf("Unlock failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if counter != n {
		t.Fatalf("lost updates under the lock: expected %d, got %d", n, counter)
	}
}

func TestMemoryLocker_Keys(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	// Different keys do not contend.
	tok1, err := l.Lock(ctx, "codes")
	if err != nil {
		t.Fatalf("Lock codes: %v", err)
	}
	tok2, err := l.Lock(ctx, "leads")
	if err != nil {
		t.Fatalf("Lock leads while codes held: %v", err)
	}
	if err := l.Unlock(ctx, "codes", tok1); err != nil {
		t.Errorf("Unlock codes: %v", err)
	}
	if err := l.Unlock(ctx, "leads", tok2); err != nil {
		t.Errorf("Unlock leads: %v", err)
	}
}

func TestMemoryLocker_ContextCancellation(t *testing.T) {
	l := NewMemoryLocker()

	token, err := l.Lock(context.Background(), "codes")
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "codes"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded while key held, got %v", err)
	}

	if err := l.Unlock(context.Background(), "codes", token); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
}

func TestMemoryLocker_TokenFencing(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	token, err := l.Lock(ctx, "codes")
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}

	if err := l.Unlock(ctx, "codes", "wrong-token"); !errors.Is(err, domain.ErrLockNotHeld) {
		t.Fatalf("expected ErrLockNotHeld for wrong token, got %v", err)
	}
	if err := l.Unlock(ctx, "codes", token); err != nil {
		t.Fatalf("Unlock with right token failed: %v", err)
	}
	if err := l.Unlock(ctx, "codes", token); !errors.Is(err, domain.ErrLockNotHeld) {
		t.Fatalf("expected ErrLockNotHeld on double unlock, got %v", err)
	}
}
