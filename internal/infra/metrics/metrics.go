// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	codesRegistered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referral_codes_registered_total",
			Help: "Referral code registrations by result (ok/duplicate/error).",
		},
		[]string{"result"},
	)

	redemptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "referral_redemptions_total",
			Help: "Redemption attempts by result (ok/not_found/self/duplicate/error).",
		},
		[]string{"result"},
	)

	leadsCaptured = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_captured_total",
			Help: "Lead submissions by result (ok/duplicate/error).",
		},
		[]string{"result"},
	)

	notifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Outbound notifications by event kind and delivery success.",
		},
		[]string{"kind", "success"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			codesRegistered, redemptions, leadsCaptured, notifications,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func IncRegistration(result string) {
	codesRegistered.WithLabelValues(norm(result)).Inc()
}

func IncRedemption(result string) {
	redemptions.WithLabelValues(norm(result)).Inc()
}

func IncLead(result string) {
	leadsCaptured.WithLabelValues(norm(result)).Inc()
}

func IncNotification(kind string, ok bool) {
	notifications.WithLabelValues(norm(kind), strconv.FormatBool(ok)).Inc()
}
