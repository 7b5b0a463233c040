// File: internal/usecase/referral_uc.go
package usecase

import (
	"context"
	"fmt"
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

// Collection lock keys. Every load-modify-save cycle on a collection runs
// under its key, so at most one mutation commits per collection at a time.
const (
	codesLockKey = "referral:codes"
	leadsLockKey = "referral:leads"
)

// Compile-time check
var _ ReferralUseCase = (*referralUC)(nil)

// ReferralUseCase manages referral code registration and redemption.
type ReferralUseCase interface {
	// Register stores a new code for ownerHandle. Each owner gets exactly
	// one code; a second registration fails with domain.ErrOwnerExists.
	Register(ctx context.Context, ownerName, ownerHandle, code string) error
	// Redeem records that redeemerHandle used the given code. The code is
	// matched exactly against the stored token (callers upper-case it
	// first); owners cannot redeem their own code and each redeemer is
	// counted at most once per code.
	Redeem(ctx context.Context, code, redeemerHandle string) error
}

type referralUC struct {
	codes    repository.ReferralCodeRepository
	locks    lock.Locker
	notifier adapter.Notifier
	timeout  time.Duration
	log      *zerolog.Logger
}

// NewReferralUseCase constructs the usecase. notifyTimeout bounds each
// outbound notification attempt.
func NewReferralUseCase(
	codes repository.ReferralCodeRepository,
	locks lock.Locker,
	notifier adapter.Notifier,
	notifyTimeout time.Duration,
	logger *zerolog.Logger,
) *referralUC {
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &referralUC{codes: codes, locks: locks, notifier: notifier, timeout: notifyTimeout, log: logger}
}

func (uc *referralUC) Register(ctx context.Context, ownerName, ownerHandle, code string) error {
	defer logging.TraceDuration(uc.log, "ReferralUC.Register")()

	if ownerName == "" || ownerHandle == "" || code == "" {
		metrics.IncRegistration("error")
		return domain.ErrInvalidArgument
	}

	err := uc.registerLocked(ctx, ownerName, ownerHandle, code)
	switch {
	case err == nil:
		metrics.IncRegistration("ok")
		uc.log.Info().Str("owner", ownerHandle).Msg("referral code registered")
	case err == domain.ErrOwnerExists:
		metrics.IncRegistration("duplicate")
	default:
		metrics.IncRegistration("error")
	}
	return err
}

func (uc *referralUC) registerLocked(ctx context.Context, ownerName, ownerHandle, code string) error {
	token, err := uc.locks.Lock(ctx, codesLockKey)
	if err != nil {
		return fmt.Errorf("acquire codes lock: %w", err)
	}
	defer uc.unlock(codesLockKey, token)

	codes, err := uc.codes.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load referral codes: %w", err)
	}

	// Owner uniqueness is the only uniqueness the registration path
	// enforces; code values themselves may repeat, and redemption takes
	// the first match in persisted order.
	for _, c := range codes {
		if c.IsOwner(ownerHandle) {
			return domain.ErrOwnerExists
		}
	}

	codes = append(codes, model.NewReferralCode(ownerName, ownerHandle, code))
	if err := uc.codes.SaveAll(ctx, codes); err != nil {
		return fmt.Errorf("save referral codes: %w", err)
	}
	return nil
}

func (uc *referralUC) Redeem(ctx context.Context, code, redeemerHandle string) error {
	defer logging.TraceDuration(uc.log, "ReferralUC.Redeem")()

	if code == "" || redeemerHandle == "" {
		metrics.IncRedemption("error")
		return domain.ErrInvalidArgument
	}

	owner, err := uc.redeemLocked(ctx, code, redeemerHandle)
	switch err {
	case nil:
		metrics.IncRedemption("ok")
	case domain.ErrCodeNotFound:
		metrics.IncRedemption("not_found")
	case domain.ErrSelfRedemption:
		metrics.IncRedemption("self")
	case domain.ErrAlreadyRedeemed:
		metrics.IncRedemption("duplicate")
	default:
		metrics.IncRedemption("error")
	}
	if err != nil {
		return err
	}

	uc.log.Info().Str("code", code).Str("owner", owner).Str("redeemer", redeemerHandle).Msg("code redeemed")

	// The mutation is committed and the lock released; delivery is
	// advisory and must not delay the response.
	dispatchEvent(uc.notifier, uc.timeout, uc.log, model.CodeRedeemed{
		Code:           code,
		OwnerHandle:    owner,
		RedeemerHandle: redeemerHandle,
	})
	return nil
}

// redeemLocked runs the whole read-modify-write under the codes lock and
// returns the owner handle of the matched code.
func (uc *referralUC) redeemLocked(ctx context.Context, code, redeemerHandle string) (string, error) {
	token, err := uc.locks.Lock(ctx, codesLockKey)
	if err != nil {
		return "", fmt.Errorf("acquire codes lock: %w", err)
	}
	defer uc.unlock(codesLockKey, token)

	codes, err := uc.codes.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load referral codes: %w", err)
	}

	found := -1
	for i, c := range codes {
		if c.Code == code {
			found = i
			break
		}
	}
	if found < 0 {
		return "", domain.ErrCodeNotFound
	}
	if codes[found].IsOwner(redeemerHandle) {
		return "", domain.ErrSelfRedemption
	}
	if codes[found].HasRedeemer(redeemerHandle) {
		return "", domain.ErrAlreadyRedeemed
	}

	codes[found].Redeemers = append(codes[found].Redeemers, redeemerHandle)
	if err := uc.codes.SaveAll(ctx, codes); err != nil {
		return "", fmt.Errorf("save referral codes: %w", err)
	}
	return codes[found].OwnerHandle, nil
}

func (uc *referralUC) unlock(key, token string) {
	if err := uc.locks.Unlock(context.Background(), key, token); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("release collection lock")
	}
}
