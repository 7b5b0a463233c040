package repository

import (
	"context"

	"referral-backend/internal/domain/model"
)

// LeadRepository is the port for the leads collection. Same whole-collection
// contract as ReferralCodeRepository.
type LeadRepository interface {
	LoadAll(ctx context.Context) ([]model.Lead, error)
	SaveAll(ctx context.Context, leads []model.Lead) error
}
