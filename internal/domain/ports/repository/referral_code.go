package repository

import (
	"context"

	"referral-backend/internal/domain/model"
)

// ReferralCodeRepository is the port for the referral-code collection.
// The collection is read and written as a unit: callers load everything,
// mutate in memory, and save everything back. Callers must hold the
// collection lock for the whole load-modify-save sequence.
type ReferralCodeRepository interface {
	// LoadAll returns every code in persisted order. A missing backing
	// resource yields an empty slice, not an error. Records persisted
	// before the redeemer set existed come back with an empty set.
	LoadAll(ctx context.Context) ([]model.ReferralCode, error)
	// SaveAll overwrites the whole collection. Concurrent readers never
	// observe a partial write.
	SaveAll(ctx context.Context, codes []model.ReferralCode) error
}
