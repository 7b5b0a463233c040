// File: internal/infra/notify/smtp.go
package notify

import (
	"context"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"referral-backend/internal/config"
	"referral-backend/internal/domain/model"
	"referral-backend/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*SMTP)(nil)

// SMTP delivers events through a plain SMTP relay for deployments without
// a Mailgun account.
type SMTP struct {
	cfg      config.SMTPConfig
	receiver string
	log      *zerolog.Logger
}

func NewSMTP(cfg config.SMTPConfig, receiver string, logger *zerolog.Logger) *SMTP {
	return &SMTP{cfg: cfg, receiver: receiver, log: logger}
}

func (n *SMTP) Notify(ctx context.Context, ev model.Event) bool {
	if n.cfg.Host == "" || n.cfg.Sender == "" || n.receiver == "" {
		n.log.Warn().Str("kind", ev.Kind()).
			Msg("smtp not configured; notification dropped")
		return false
	}

	_, fromLabel, subject, body := compose(ev)

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.Sender, fromLabel))
	m.SetHeader("To", n.receiver)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	port := n.cfg.Port
	if port == 0 {
		port = 465
	}
	d := gomail.NewDialer(n.cfg.Host, port, n.cfg.User, n.cfg.Password)

	// gomail has no context support; run the send aside so the caller's
	// timeout still bounds the wait.
	done := make(chan error, 1)
	go func() { done <- d.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			n.log.Error().Err(err).Str("kind", ev.Kind()).Msg("smtp send failed")
			return false
		}
	case <-ctx.Done():
		n.log.Error().Err(ctx.Err()).Str("kind", ev.Kind()).Msg("smtp send timed out")
		return false
	}

	n.log.Info().Str("kind", ev.Kind()).Msg("notification email sent")
	return true
}
