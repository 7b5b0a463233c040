// File: internal/infra/db/postgres/lead_repo.go
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

var _ repository.LeadRepository = (*leadRepo)(nil)

type leadRepo struct {
	pool *pgxpool.Pool
}

func NewLeadRepo(pool *pgxpool.Pool) repository.LeadRepository {
	return &leadRepo{pool: pool}
}

func (r *leadRepo) LoadAll(ctx context.Context) ([]model.Lead, error) {
	const q = `
SELECT id, name, email, phone, message, captured_at
  FROM leads
 ORDER BY pos;
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("load leads: %w", err)
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Message, &l.CapturedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *leadRepo) SaveAll(ctx context.Context, leads []model.Lead) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE leads RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate leads: %w", err)
	}
	const q = `
INSERT INTO leads (id, name, email, phone, message, captured_at)
VALUES ($1, $2, $3, $4, $5, $6);
`
	for _, l := range leads {
		if _, err := tx.Exec(ctx, q, l.ID, l.Name, l.Email, l.Phone, l.Message, l.CapturedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domain.ErrEmailExists
			}
			return fmt.Errorf("insert lead: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
