// File: internal/infra/notify/mailgun.go
package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"referral-backend/internal/config"
	"referral-backend/internal/domain/model"
	"referral-backend/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*Mailgun)(nil)

// Mailgun delivers events as transactional emails through the Mailgun
// messages API. An incomplete configuration disables delivery without
// failing anything: Notify logs and returns false.
type Mailgun struct {
	apiKey   string
	domain   string
	receiver string
	baseURL  string
	client   *http.Client
	log      *zerolog.Logger
}

func NewMailgun(cfg config.MailgunConfig, receiver string, logger *zerolog.Logger) *Mailgun {
	return &Mailgun{
		apiKey:   cfg.APIKey,
		domain:   cfg.Domain,
		receiver: receiver,
		baseURL:  "https://api.mailgun.net/v3",
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      logger,
	}
}

func (n *Mailgun) Notify(ctx context.Context, ev model.Event) bool {
	if n.apiKey == "" || n.domain == "" || n.receiver == "" {
		n.log.Warn().Str("kind", ev.Kind()).
			Msg("mailgun not configured; notification dropped")
		return false
	}

	fromLocal, fromLabel, subject, body := compose(ev)

	form := url.Values{}
	form.Set("from", fmt.Sprintf("%s <%s@%s>", fromLabel, fromLocal, n.domain))
	form.Set("to", n.receiver)
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := fmt.Sprintf("%s/%s/messages", n.baseURL, n.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		n.log.Error().Err(err).Msg("build mailgun request")
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Error().Err(err).Str("kind", ev.Kind()).Msg("mailgun send failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		n.log.Error().Int("status", resp.StatusCode).Str("body", string(detail)).
			Str("kind", ev.Kind()).Msg("mailgun send rejected")
		return false
	}

	n.log.Info().Str("kind", ev.Kind()).Msg("notification email sent")
	return true
}
