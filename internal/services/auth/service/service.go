// Package service implements bearer token verification against Postgres
package service

import (
	"context"
	"strings"
	"time"

	"criticode/internal/modkit/repokit"
	perr "criticode/internal/platform/errors"
	"criticode/internal/platform/logger"
	"criticode/internal/services/auth/domain"
)

// Svc resolves bearer tokens into identities
type Svc struct {
	db     repokit.Queryer
	binder repokit.Binder[domain.Repo]
	now    func() time.Time
}

var _ domain.VerifierPort = (*Svc)(nil)

// New constructs the auth service
func New(db repokit.Queryer, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("auth.Service requires a non-nil Queryer")
	}
	if binder == nil {
		panic("auth.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder, now: time.Now}
}

// Verify resolves token to an identity. Every failure mode collapses to an
// Unauthorized-coded error so callers cannot probe token state
func (s *Svc) Verify(ctx context.Context, token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, perr.Unauthorizedf("missing bearer token")
	}

	hash := domain.HashToken(token)
	rec, err := s.binder.Bind(s.db).TokenByHash(ctx, hash)
	if err != nil {
		if perr.CodeOf(err) == perr.ErrorCodeNotFound {
			return domain.Identity{}, perr.Unauthorizedf("invalid token")
		}
		return domain.Identity{}, err
	}
	if rec.Expired(s.now()) {
		return domain.Identity{}, perr.Unauthorizedf("token expired")
	}

	if err := s.binder.Bind(s.db).Touch(ctx, hash, s.now()); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("token touch failed")
	}
	return domain.Identity{ID: rec.UserID, Email: rec.Email}, nil
}
