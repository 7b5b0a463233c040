// File: internal/infra/db/postgres/referral_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"referral-backend/internal/domain"
	"referral-backend/internal/domain/model"
	"referral-backend/internal/domain/ports/repository"
)

const uniqueViolation = "23505"

// Ensure implementation satisfies the interface.
var _ repository.ReferralCodeRepository = (*referralCodeRepo)(nil)

type referralCodeRepo struct {
	pool *pgxpool.Pool
}

func NewReferralCodeRepo(pool *pgxpool.Pool) repository.ReferralCodeRepository {
	return &referralCodeRepo{pool: pool}
}

func (r *referralCodeRepo) LoadAll(ctx context.Context) ([]model.ReferralCode, error) {
	const q = `
SELECT owner_handle, owner_name, code, redeemers
  FROM referral_codes
 ORDER BY pos;
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load referral codes: %w", err)
	}
	defer rows.Close()

	var codes []model.ReferralCode
	for rows.Next() {
		var c model.ReferralCode
		if err := rows.Scan(&c.OwnerHandle, &c.OwnerName, &c.Code, &c.Redeemers); err != nil {
			return nil, fmt.Errorf("scan referral code: %w", err)
		}
		if c.Redeemers == nil {
			c.Redeemers = []string{}
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// SaveAll rewrites the collection in one transaction so readers only ever
// see a fully committed state.
func (r *referralCodeRepo) SaveAll(ctx context.Context, codes []model.ReferralCode) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE referral_codes RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate referral codes: %w", err)
	}
	const q = `
INSERT INTO referral_codes (owner_handle, owner_name, code, redeemers)
VALUES ($1, $2, $3, $4);
`
	for _, c := range codes {
		if _, err := tx.Exec(ctx, q, c.OwnerHandle, c.OwnerName, c.Code, c.Redeemers); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domain.ErrOwnerExists
			}
			return fmt.Errorf("insert referral code: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
