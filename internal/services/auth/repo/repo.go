// Package repo provides Postgres bindings for the auth domain.Repo
package repo

import (
	"context"
	"time"

	"criticode/internal/modkit/repokit"
	perr "criticode/internal/platform/errors"
	"criticode/internal/services/auth/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// TokenByHash looks up an active token row and its subject
func (r *queries) TokenByHash(ctx context.Context, hash string) (domain.TokenRecord, error) {
	const sql = `
		SELECT u.id, u.email, COALESCE(t.expires_at, 'epoch'::timestamptz)
		FROM api_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token_hash = $1 AND t.revoked_at IS NULL
	`
	var (
		rec domain.TokenRecord
		exp time.Time
	)
	err := r.q.QueryRow(ctx, sql, hash).Scan(&rec.UserID, &rec.Email, &exp)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.TokenRecord{}, perr.NotFoundf("token not found")
		}
		return domain.TokenRecord{}, perr.FromPostgres(err, "token lookup failed")
	}
	// epoch sentinel means no expiry configured
	if exp.Unix() != 0 {
		rec.ExpiresAt = exp
	}
	return rec, nil
}

// Touch updates the token's last-used timestamp, best effort
func (r *queries) Touch(ctx context.Context, hash string, at time.Time) error {
	const sql = `UPDATE api_tokens SET last_used_at = $2 WHERE token_hash = $1`
	if _, err := r.q.Exec(ctx, sql, hash, at); err != nil {
		return perr.FromPostgres(err, "token touch failed")
	}
	return nil
}
