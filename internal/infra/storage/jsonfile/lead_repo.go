// File: internal/infra/storage/jsonfile/lead_repo.go
package jsonfile

import (
	"context"

	"github.com/rs/zerolog"

	"referral-backend/internal/domain/model"
	"referral-backend/internal/domain/ports/repository"
)

var _ repository.LeadRepository = (*leadRepo)(nil)

type leadRepo struct {
	store store
}

// NewLeadRepo persists the leads collection at path.
func NewLeadRepo(path string, logger *zerolog.Logger) repository.LeadRepository {
	return &leadRepo{store: store{path: path, log: logger}}
}

func (r *leadRepo) LoadAll(ctx context.Context) ([]model.Lead, error) {
	leads, err := load[model.Lead](&r.store)
	if err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *leadRepo) SaveAll(ctx context.Context, leads []model.Lead) error {
	if leads == nil {
		leads = []model.Lead{}
	}
	return r.store.save(leads)
}
