package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"criticode/internal/core/analysis"
	"criticode/internal/modkit/repokit"
	perr "criticode/internal/platform/errors"
	"criticode/internal/services/api/reviews/domain"
)

type fakeRepo struct {
	rows map[string]domain.Review

	lastListInput domain.ListInput
	insertErr     error
}

func (f *fakeRepo) Insert(_ context.Context, in domain.CreateInput) (domain.Review, error) {
	if f.insertErr != nil {
		return domain.Review{}, f.insertErr
	}
	rev := domain.Review{
		ID:        "r1",
		OwnerID:   in.OwnerID,
		Code:      in.Code,
		Language:  in.Language,
		FileName:  in.FileName,
		Analysis:  in.Analysis,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if f.rows == nil {
		f.rows = map[string]domain.Review{}
	}
	f.rows[rev.ID] = rev
	return rev, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (domain.Review, error) {
	rev, ok := f.rows[id]
	if !ok {
		return domain.Review{}, perr.NotFoundf("review %s not found", id)
	}
	return rev, nil
}

func (f *fakeRepo) List(_ context.Context, ownerID string, in domain.ListInput) ([]domain.Summary, int, error) {
	f.lastListInput = in
	out := []domain.Summary{}
	for _, rev := range f.rows {
		if rev.OwnerID == ownerID {
			out = append(out, domain.Summary{ID: rev.ID, Language: rev.Language})
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) DeleteOwned(_ context.Context, id, ownerID string) (bool, error) {
	rev, ok := f.rows[id]
	if !ok || rev.OwnerID != ownerID {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

func (f *fakeRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeRepo) Search(_ context.Context, ownerID string, in domain.SearchInput) ([]domain.Summary, int, error) {
	out := []domain.Summary{}
	for _, rev := range f.rows {
		if rev.OwnerID != ownerID {
			continue
		}
		if strings.Contains(rev.Code, in.Query) || strings.Contains(rev.FileName, in.Query) {
			out = append(out, domain.Summary{ID: rev.ID})
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) CountByOwner(_ context.Context, ownerID string) (int, error) {
	n := 0
	for _, rev := range f.rows {
		if rev.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) LanguagesByOwner(_ context.Context, ownerID string) ([]string, error) {
	seen := map[string]bool{}
	out := []string{}
	for _, rev := range f.rows {
		if rev.OwnerID == ownerID && !seen[rev.Language] {
			seen[rev.Language] = true
			out = append(out, rev.Language)
		}
	}
	return out, nil
}

func (f *fakeRepo) Recent(_ context.Context, ownerID string, n int) ([]domain.Summary, error) {
	out, _, err := f.List(context.Background(), ownerID, domain.ListInput{})
	if err != nil {
		return nil, err
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

type nopQueryer struct{}

func (nopQueryer) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, nil
}
func (nopQueryer) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (nopQueryer) QueryRow(context.Context, string, ...any) repokit.Row        { return nil }

func newSvc(repo *fakeRepo) *Svc {
	return New(nopQueryer{}, repokit.BindFunc[domain.Repo](func(repokit.Queryer) domain.Repo { return repo }))
}

func seeded(t *testing.T) (*Svc, *fakeRepo) {
	t.Helper()
	repo := &fakeRepo{}
	svc := newSvc(repo)
	_, err := svc.Create(context.Background(), domain.CreateInput{
		OwnerID:  "alice",
		Code:     "SELECT 1",
		Language: "sql",
		FileName: "query.sql",
		Analysis: analysis.Empty(),
	})
	if err != nil {
		t.Fatalf("seed create: %v", err)
	}
	return svc, repo
}

func TestCreateValidation(t *testing.T) {
	svc := newSvc(&fakeRepo{})

	cases := []struct {
		name string
		in   domain.CreateInput
	}{
		{"no owner", domain.CreateInput{Code: "x", Language: "go"}},
		{"no code", domain.CreateInput{OwnerID: "a", Language: "go"}},
		{"no language", domain.CreateInput{OwnerID: "a", Code: "x"}},
		{"oversize code", domain.CreateInput{
			OwnerID: "a", Language: "go",
			Code: strings.Repeat("a", domain.MaxCodeBytes+1),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			if perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
				t.Fatalf("code = %v, want InvalidArgument", perr.CodeOf(err))
			}
		})
	}
}

func TestGetByIDOwnership(t *testing.T) {
	svc, _ := seeded(t)

	if _, err := svc.GetByID(context.Background(), "r1", "alice"); err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "r1", "eve"); perr.CodeOf(err) != perr.ErrorCodeForbidden {
		t.Fatalf("foreign read must be Forbidden, got %v", err)
	}
	if _, err := svc.GetByID(context.Background(), "missing", "alice"); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("missing read must be NotFound, got %v", err)
	}
}

func TestDeleteOwnership(t *testing.T) {
	svc, repo := seeded(t)

	if err := svc.Delete(context.Background(), "r1", "eve"); perr.CodeOf(err) != perr.ErrorCodeForbidden {
		t.Fatalf("foreign delete must be Forbidden, got %v", err)
	}
	if _, ok := repo.rows["r1"]; !ok {
		t.Fatal("foreign delete must not remove the row")
	}
	if err := svc.Delete(context.Background(), "r1", "alice"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "r1", "alice"); perr.CodeOf(err) != perr.ErrorCodeNotFound {
		t.Fatalf("second delete must be NotFound, got %v", err)
	}
}

func TestListClampsPaging(t *testing.T) {
	svc, repo := seeded(t)

	if _, err := svc.List(context.Background(), "alice", domain.ListInput{Page: 0, Limit: 0}); err != nil {
		t.Fatal(err)
	}
	if repo.lastListInput.Page != 1 || repo.lastListInput.Limit != 20 {
		t.Fatalf("defaults: page=%d limit=%d", repo.lastListInput.Page, repo.lastListInput.Limit)
	}

	if _, err := svc.List(context.Background(), "alice", domain.ListInput{Page: 3, Limit: 500}); err != nil {
		t.Fatal(err)
	}
	if repo.lastListInput.Limit != 20 {
		t.Fatalf("limit above 100 must clamp to the default, got %d", repo.lastListInput.Limit)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	svc, _ := seeded(t)

	if _, err := svc.Search(context.Background(), "alice", domain.SearchInput{}); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("empty query: %v", err)
	}
	pg, err := svc.Search(context.Background(), "alice", domain.SearchInput{Query: "SELECT"})
	if err != nil {
		t.Fatal(err)
	}
	if pg.Total != 1 {
		t.Fatalf("search total = %d, want 1", pg.Total)
	}
}

func TestStats(t *testing.T) {
	svc, _ := seeded(t)

	st, err := svc.Stats(context.Background(), "alice")
	if err != nil {
		t.Fatal(err)
	}
	if st.Total != 1 || len(st.Languages) != 1 || st.Languages[0] != "sql" {
		t.Fatalf("stats = %+v", st)
	}
	if len(st.Recent) != 1 {
		t.Fatalf("recent = %+v", st.Recent)
	}
}
