//go:build !integration

// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"referral-backend/internal/domain/model"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memCodeRepo is a small in-memory implementation used by unit tests.
type memCodeRepo struct {
	mu      sync.RWMutex
	codes   []model.ReferralCode
	loadErr error // used by tests to simulate load failures
	saveErr error // used by tests to simulate save failures
}

func newMemCodeRepo() *memCodeRepo { return &memCodeRepo{} }

func copyCodes(src []model.ReferralCode) []model.ReferralCode {
	out := make([]model.ReferralCode, len(src))
	copy(out, src)
	for i := range out {
		rs := make([]string, len(src[i].Redeemers))
		copy(rs, src[i].Redeemers)
		out[i].Redeemers = rs
	}
	return out
}

func (m *memCodeRepo) LoadAll(ctx context.Context) ([]model.ReferralCode, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyCodes(m.codes), nil
}

func (m *memCodeRepo) SaveAll(ctx context.Context, codes []model.ReferralCode) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes = copyCodes(codes)
	return nil
}

// memLeadRepo mirrors memCodeRepo for the leads collection.
type memLeadRepo struct {
	mu      sync.RWMutex
	leads   []model.Lead
	saveErr error
}

func newMemLeadRepo() *memLeadRepo { return &memLeadRepo{} }

func (m *memLeadRepo) LoadAll(ctx context.Context) ([]model.Lead, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Lead, len(m.leads))
	copy(out, m.leads)
	return out, nil
}

func (m *memLeadRepo) SaveAll(ctx context.Context, leads []model.Lead) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = make([]model.Lead, len(leads))
	copy(m.leads, leads)
	return nil
}

// mockNotifier records events and lets tests wait for the asynchronous
// dispatch to land.
type mockNotifier struct {
	ch chan model.Event
	ok bool
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{ch: make(chan model.Event, 32), ok: true}
}

func (m *mockNotifier) Notify(ctx context.Context, ev model.Event) bool {
	m.ch <- ev
	return m.ok
}

func (m *mockNotifier) wait(t *testing.T) model.Event {
	t.Helper()
	select {
	case ev := <-m.ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification dispatch")
		return nil
	}
}

func (m *mockNotifier) expectNone(t *testing.T) {
	t.Helper()
	select {
	case ev := <-m.ch:
		t.Fatalf("unexpected notification dispatched: %#v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}
