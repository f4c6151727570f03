// Package service implements the owner-scoped review store
package service

import (
	"context"

	"criticode/internal/modkit/repokit"
	perr "criticode/internal/platform/errors"
	"criticode/internal/services/api/reviews/domain"
)

const recentStatsCount = 10

// Svc implements domain.Ports over a bound repository
type Svc struct {
	db     repokit.Queryer
	binder repokit.Binder[domain.Repo]
}

var _ domain.Ports = (*Svc)(nil)

// New constructs the reviews service
func New(db repokit.Queryer, binder repokit.Binder[domain.Repo]) *Svc {
	if db == nil {
		panic("reviews.Service requires a non-nil Queryer")
	}
	if binder == nil {
		panic("reviews.Service requires a non-nil Repo binder")
	}
	return &Svc{db: db, binder: binder}
}

func (s *Svc) repo() domain.Repo { return s.binder.Bind(s.db) }

// Create validates and persists a completed analysis
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Review, error) {
	switch {
	case in.OwnerID == "":
		return domain.Review{}, perr.InvalidArgf("owner is required")
	case in.Code == "":
		return domain.Review{}, perr.InvalidArgf("code is required")
	case in.Language == "":
		return domain.Review{}, perr.InvalidArgf("language is required")
	case len(in.Code) > domain.MaxCodeBytes:
		return domain.Review{}, perr.InvalidArgf("code exceeds the %d byte limit", domain.MaxCodeBytes)
	}
	return s.repo().Insert(ctx, in)
}

// GetByID returns the review when it exists and belongs to ownerID.
// A row owned by someone else yields a Forbidden-coded error, not a 404
func (s *Svc) GetByID(ctx context.Context, id, ownerID string) (domain.Review, error) {
	if id == "" || ownerID == "" {
		return domain.Review{}, perr.InvalidArgf("review id and owner are required")
	}
	rev, err := s.repo().GetByID(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	if rev.OwnerID != ownerID {
		return domain.Review{}, perr.Forbiddenf("review %s belongs to another owner", id)
	}
	return rev, nil
}

// List returns a page of the owner's reviews, newest-first by default
func (s *Svc) List(ctx context.Context, ownerID string, in domain.ListInput) (domain.ListPage, error) {
	if ownerID == "" {
		return domain.ListPage{}, perr.InvalidArgf("owner is required")
	}
	in = clampPaging(in)

	items, total, err := s.repo().List(ctx, ownerID, in)
	if err != nil {
		return domain.ListPage{}, err
	}
	return page(items, total, in.Page, in.Limit), nil
}

// Delete removes the owner's review. The repo predicate carries the owner so
// a non-owner can never delete the row, even racing the existence check
func (s *Svc) Delete(ctx context.Context, id, ownerID string) error {
	if id == "" || ownerID == "" {
		return perr.InvalidArgf("review id and owner are required")
	}
	deleted, err := s.repo().DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}
	exists, err := s.repo().Exists(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return perr.Forbiddenf("review %s belongs to another owner", id)
	}
	return perr.NotFoundf("review %s not found", id)
}

// Search matches the owner's reviews by file name or code substring
func (s *Svc) Search(ctx context.Context, ownerID string, in domain.SearchInput) (domain.ListPage, error) {
	if ownerID == "" {
		return domain.ListPage{}, perr.InvalidArgf("owner is required")
	}
	if in.Query == "" {
		return domain.ListPage{}, perr.InvalidArgf("search query is required")
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}

	items, total, err := s.repo().Search(ctx, ownerID, in)
	if err != nil {
		return domain.ListPage{}, err
	}
	return page(items, total, in.Page, in.Limit), nil
}

// Stats aggregates the owner's review activity
func (s *Svc) Stats(ctx context.Context, ownerID string) (domain.Stats, error) {
	if ownerID == "" {
		return domain.Stats{}, perr.InvalidArgf("owner is required")
	}
	r := s.repo()

	total, err := r.CountByOwner(ctx, ownerID)
	if err != nil {
		return domain.Stats{}, err
	}
	langs, err := r.LanguagesByOwner(ctx, ownerID)
	if err != nil {
		return domain.Stats{}, err
	}
	recent, err := r.Recent(ctx, ownerID, recentStatsCount)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{Total: total, Languages: langs, Recent: recent}, nil
}

func clampPaging(in domain.ListInput) domain.ListInput {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}
	return in
}

func page(items []domain.Summary, total, pageNo, limit int) domain.ListPage {
	totalPages := (total + limit - 1) / limit
	return domain.ListPage{
		Items:      items,
		Total:      total,
		TotalPages: totalPages,
		Page:       pageNo,
		Limit:      limit,
	}
}
