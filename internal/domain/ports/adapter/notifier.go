package adapter

import (
	"context"

	"referral-backend/internal/domain/model"
)

// Notifier delivers events to the outbound notification channel.
// Notify reports whether delivery succeeded but never returns an error:
// an unconfigured channel and a failed send both come back false, logged
// by the implementation. Callers treat the outcome as advisory.
type Notifier interface {
	Notify(ctx context.Context, ev model.Event) bool
}
