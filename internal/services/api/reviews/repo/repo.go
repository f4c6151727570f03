// Package repo provides Postgres bindings for the reviews domain.Repo
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"criticode/internal/core/analysis"
	"criticode/internal/modkit/repokit"
	perr "criticode/internal/platform/errors"
	pstr "criticode/internal/platform/strings"
	"criticode/internal/services/api/reviews/domain"
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

const summaryCols = `id, language, COALESCE(file_name, ''), issue_count, created_at, updated_at`

// Insert stores a new review and returns it with generated id and timestamps
func (r *queries) Insert(ctx context.Context, in domain.CreateInput) (domain.Review, error) {
	payload, err := json.Marshal(in.Analysis)
	if err != nil {
		return domain.Review{}, perr.Wrap(err, perr.ErrorCodeJSON, "marshal analysis")
	}

	const sql = `
		INSERT INTO reviews (id, owner_id, code, language, file_name, analysis, issue_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_at, updated_at
	`
	rev := domain.Review{
		OwnerID:  in.OwnerID,
		Code:     in.Code,
		Language: in.Language,
		FileName: in.FileName,
		Analysis: in.Analysis,
	}
	err = r.q.QueryRow(ctx, sql,
		uuid.NewString(), in.OwnerID, in.Code, in.Language,
		pstr.SQLNull(in.FileName), payload, in.Analysis.IssueCount(),
	).Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt)
	if err != nil {
		return domain.Review{}, perr.FromPostgresWithField(err, "insert review")
	}
	return rev, nil
}

// GetByID fetches a review by id regardless of owner; the service decides
// whether the caller may see it
func (r *queries) GetByID(ctx context.Context, id string) (domain.Review, error) {
	const sql = `
		SELECT id, owner_id, code, language, COALESCE(file_name, ''), analysis, created_at, updated_at
		FROM reviews WHERE id = $1
	`
	var (
		rev     domain.Review
		payload []byte
	)
	err := r.q.QueryRow(ctx, sql, id).Scan(
		&rev.ID, &rev.OwnerID, &rev.Code, &rev.Language, &rev.FileName,
		&payload, &rev.CreatedAt, &rev.UpdatedAt,
	)
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Review{}, perr.NotFoundf("review %s not found", id)
		}
		return domain.Review{}, perr.FromPostgres(err, "get review")
	}
	if err := json.Unmarshal(payload, &rev.Analysis); err != nil {
		return domain.Review{}, perr.Wrap(err, perr.ErrorCodeJSON, "unmarshal analysis")
	}
	normalize(&rev.Analysis)
	return rev, nil
}

// List returns a page of summaries plus the owner's total under the filter
func (r *queries) List(ctx context.Context, ownerID string, in domain.ListInput) ([]domain.Summary, int, error) {
	where := `owner_id = $1`
	args := []any{ownerID}
	if in.Language != "" {
		where += ` AND lower(language) = lower($2)`
		args = append(args, in.Language)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM reviews WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, perr.FromPostgres(err, "count reviews")
	}

	sortCol, ok := domain.SortFields[in.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	offset := (in.Page - 1) * in.Limit
	sql := fmt.Sprintf(
		`SELECT %s FROM reviews WHERE %s ORDER BY %s DESC LIMIT %d OFFSET %d`,
		summaryCols, where, sortCol, in.Limit, offset,
	)
	items, err := r.summaries(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// DeleteOwned removes the row only when the owner matches; the predicate
// carries the ownership check so a racing non-owner can never win
func (r *queries) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM reviews WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, perr.FromPostgres(err, "delete review")
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether any row has the id, regardless of owner
func (r *queries) Exists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, perr.FromPostgres(err, "review existence check")
	}
	return ok, nil
}

// Search matches a case-insensitive substring against file name or code
func (r *queries) Search(ctx context.Context, ownerID string, in domain.SearchInput) ([]domain.Summary, int, error) {
	const where = `owner_id = $1 AND (file_name ILIKE $2 OR code ILIKE $2)`
	pattern := "%" + escapeLike(in.Query) + "%"

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM reviews WHERE `+where, ownerID, pattern).Scan(&total); err != nil {
		return nil, 0, perr.FromPostgres(err, "count search results")
	}

	offset := (in.Page - 1) * in.Limit
	sql := fmt.Sprintf(
		`SELECT %s FROM reviews WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		summaryCols, where, in.Limit, offset,
	)
	items, err := r.summaries(ctx, sql, ownerID, pattern)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountByOwner returns the owner's total review count
func (r *queries) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM reviews WHERE owner_id = $1`, ownerID).Scan(&n); err != nil {
		return 0, perr.FromPostgres(err, "count reviews")
	}
	return n, nil
}

// LanguagesByOwner returns the distinct languages the owner has reviewed
func (r *queries) LanguagesByOwner(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`SELECT DISTINCT language FROM reviews WHERE owner_id = $1 ORDER BY language`, ownerID)
	if err != nil {
		return nil, perr.FromPostgres(err, "distinct languages")
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, perr.FromPostgres(err, "scan language")
		}
		out = append(out, lang)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "iterate languages")
	}
	return out, nil
}

// Recent returns the owner's n newest summaries
func (r *queries) Recent(ctx context.Context, ownerID string, n int) ([]domain.Summary, error) {
	sql := fmt.Sprintf(
		`SELECT %s FROM reviews WHERE owner_id = $1 ORDER BY created_at DESC LIMIT %d`,
		summaryCols, n,
	)
	return r.summaries(ctx, sql, ownerID)
}

func (r *queries) summaries(ctx context.Context, sql string, args ...any) ([]domain.Summary, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, perr.FromPostgres(err, "query reviews")
	}
	defer rows.Close()

	out := []domain.Summary{}
	for rows.Next() {
		var s domain.Summary
		if err := rows.Scan(&s.ID, &s.Language, &s.FileName, &s.IssueCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, perr.FromPostgres(err, "scan review summary")
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgres(err, "iterate reviews")
	}
	return out, nil
}

// normalize backfills nil collections on rows persisted before a category
// existed so readers always see all four arrays
func normalize(a *analysis.Result) {
	if a.Security == nil {
		a.Security = []analysis.SecurityIssue{}
	}
	if a.Performance == nil {
		a.Performance = []analysis.PerformanceIssue{}
	}
	if a.BestPractices == nil {
		a.BestPractices = []analysis.BestPracticeIssue{}
	}
	if a.Refactoring == nil {
		a.Refactoring = []analysis.RefactoringOpportunity{}
	}
}

// escapeLike neutralizes LIKE metacharacters in user input
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
