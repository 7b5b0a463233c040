// File: internal/infra/db/postgres/schema.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// EnsureSchema creates the two collection tables if they do not exist.
// pos preserves insertion order; the unique constraints are a DB-level
// backstop for the uniqueness the ledger already checks under its lock.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS referral_codes (
	pos          BIGSERIAL PRIMARY KEY,
	owner_handle TEXT NOT NULL,
	owner_name   TEXT NOT NULL,
	code         TEXT NOT NULL,
	redeemers    TEXT[] NOT NULL DEFAULT '{}'
);
CREATE UNIQUE INDEX IF NOT EXISTS referral_codes_owner_handle_key
	ON referral_codes (lower(owner_handle));

CREATE TABLE IF NOT EXISTS leads (
	pos         BIGSERIAL PRIMARY KEY,
	id          TEXT NOT NULL,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL,
	phone       TEXT NOT NULL,
	message     TEXT NOT NULL DEFAULT '',
	captured_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS leads_email_key ON leads (lower(email));
`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
