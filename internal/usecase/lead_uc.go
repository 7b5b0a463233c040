// File: internal/usecase/lead_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"referral-backend/internal/domain"
	"referral-backend/internal/domain/model"
	"referral-backend/internal/domain/ports/adapter"
	"referral-backend/internal/domain/ports/lock"
	"referral-backend/internal/domain/ports/repository"
	"referral-backend/internal/infra/logging"
	"referral-backend/internal/infra/metrics"
)

// Compile-time check
var _ LeadUseCase = (*leadUC)(nil)

// LeadUseCase captures contact-form submissions.
type LeadUseCase interface {
	// Capture stores a new lead. Email is unique case-insensitively across
	// all leads; a duplicate fails with domain.ErrEmailExists.
	Capture(ctx context.Context, name, email, phone, message string) error
}

type leadUC struct {
	leads    repository.LeadRepository
	locks    lock.Locker
	notifier adapter.Notifier
	timeout  time.Duration
	log      *zerolog.Logger
}

func NewLeadUseCase(
	leads repository.LeadRepository,
	locks lock.Locker,
	notifier adapter.Notifier,
	notifyTimeout time.Duration,
	logger *zerolog.Logger,
) *leadUC {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &leadUC{leads: leads, locks: locks, notifier: notifier, timeout: notifyTimeout, log: logger}
}

func (uc *leadUC) Capture(ctx context.Context, name, email, phone, message string) error {
	defer logging.TraceDuration(uc.log, "LeadUC.Capture")()

	if name == "" || email == "" || phone == "" {
		metrics.IncLead("error")
		return domain.ErrInvalidArgument
	}

	lead, err := uc.captureLocked(ctx, name, email, phone, message)
	switch {
	case err == nil:
		metrics.IncLead("ok")
	case err == domain.ErrEmailExists:
		metrics.IncLead("duplicate")
	default:
		metrics.IncLead("error")
	}
	if err != nil {
		return err
	}

	uc.log.Info().Str("lead_id", lead.ID).Msg("lead captured")
	dispatchEvent(uc.notifier, uc.timeout, uc.log, model.LeadCaptured{Lead: lead})
	return nil
}

func (uc *leadUC) captureLocked(ctx context.Context, name, email, phone, message string) (model.Lead, error) {
	token, err := uc.locks.Lock(ctx, leadsLockKey)
	if err != nil {
		return model.Lead{}, fmt.Errorf("acquire leads lock: %w", err)
	}
	defer func() {
		if err := uc.locks.Unlock(context.Background(), leadsLockKey, token); err != nil {
			uc.log.Warn().Err(err).Str("key", leadsLockKey).Msg("release collection lock")
		}
	}()

	leads, err := uc.leads.LoadAll(ctx)
	if err != nil {
		return model.Lead{}, fmt.Errorf("load leads: %w", err)
	}

	for _, l := range leads {
		if strings.EqualFold(l.Email, email) {
			return model.Lead{}, domain.ErrEmailExists
		}
	}

	lead := model.NewLead(name, email, phone, message)
	leads = append(leads, lead)
	if err := uc.leads.SaveAll(ctx, leads); err != nil {
		return model.Lead{}, fmt.Errorf("save leads: %w", err)
	}
	return lead, nil
}
