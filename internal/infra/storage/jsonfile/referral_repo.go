// File: internal/infra/storage/jsonfile/referral_repo.go
package jsonfile

import (
	"context"

	"github.com/rs/zerolog"

	"referral-backend/internal/domain/model"
	"referral-backend/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.ReferralCodeRepository = (*referralCodeRepo)(nil)

type referralCodeRepo struct {
	store store
}

// NewReferralCodeRepo persists the referral-code collection at path.
func NewReferralCodeRepo(path string, logger *zerolog.Logger) repository.ReferralCodeRepository {
	return &referralCodeRepo{store: store{path: path, log: logger}}
}

func (r *referralCodeRepo) LoadAll(ctx context.Context) ([]model.ReferralCode, error) {
	codes, err := load[model.ReferralCode](&r.store)
	if err != nil {
		return nil, err
	}
	// Files written before the redeemer set existed lack the field.
	for i := range codes {
		if codes[i].Redeemers == nil {
			codes[i].Redeemers = []string{}
		}
	}
	return codes, nil
}

func (r *referralCodeRepo) SaveAll(ctx context.Context, codes []model.ReferralCode) error {
	if codes == nil {
		codes = []model.ReferralCode{}
	}
	return r.store.save(codes)
}
