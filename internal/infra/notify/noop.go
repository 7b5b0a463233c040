// File: internal/infra/notify/noop.go
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"referral-backend/internal/domain/model"
	"referral-backend/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*Noop)(nil)

// Noop drops every event. Used when notifier.transport is "none".
type Noop struct {
	log *zerolog.Logger
}

func NewNoop(logger *zerolog.Logger) *Noop { return &Noop{log: logger} }

func (n *Noop) Notify(ctx context.Context, ev model.Event) bool {
	n.log.Debug().Str("kind", ev.Kind()).Msg("notifications disabled; event dropped")
	return false
}
