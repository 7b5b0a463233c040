// File: internal/usecase/dispatch.go
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"referral-backend/internal/domain/model"
	"referral-backend/internal/domain/ports/adapter"
	"referral-backend/internal/infra/metrics"
)

// dispatchEvent delivers ev on its own goroutine with a bounded timeout,
// detached from the request context. The caller has already committed and
// released the collection lock; a slow or failing channel only gets logged.
func dispatchEvent(n adapter.Notifier, timeout time.Duration, log *zerolog.Logger, ev model.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ok := n.Notify(ctx, ev)
		metrics.IncNotification(ev.Kind(), ok)
		if !ok {
			log.Warn().Str("kind", ev.Kind()).Msg("notification not delivered")
		}
	}()
}
