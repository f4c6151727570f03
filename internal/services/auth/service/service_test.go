package service

import (
	"context"
	"testing"
	"time"

	"criticode/internal/modkit/repokit"
	perr "criticode/internal/platform/errors"
	"criticode/internal/services/auth/domain"
)

type fakeRepo struct {
	byHash  map[string]domain.TokenRecord
	touched []string
}

func (f *fakeRepo) TokenByHash(_ context.Context, hash string) (domain.TokenRecord, error) {
	rec, ok := f.byHash[hash]
	if !ok {
		return domain.TokenRecord{}, perr.NotFoundf("token not found")
	}
	return rec, nil
}

func (f *fakeRepo) Touch(_ context.Context, hash string, _ time.Time) error {
	f.touched = append(f.touched, hash)
	return nil
}

type nopQueryer struct{}

func (nopQueryer) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, nil
}
func (nopQueryer) Query(context.Context, string, ...any) (repokit.Rows, error) { return nil, nil }
func (nopQueryer) QueryRow(context.Context, string, ...any) repokit.Row        { return nil }

func newSvc(repo *fakeRepo, now time.Time) *Svc {
	s := New(nopQueryer{}, repokit.BindFunc[domain.Repo](func(repokit.Queryer) domain.Repo { return repo }))
	s.now = func() time.Time { return now }
	return s
}

func TestVerify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRepo{byHash: map[string]domain.TokenRecord{
		domain.HashToken("good"):    {UserID: "u1", Email: "a@b.c", ExpiresAt: now.Add(time.Hour)},
		domain.HashToken("expired"): {UserID: "u2", Email: "x@y.z", ExpiresAt: now.Add(-time.Hour)},
		domain.HashToken("eternal"): {UserID: "u3", Email: "e@f.g"},
	}}
	svc := newSvc(repo, now)

	id, err := svc.Verify(context.Background(), "good")
	if err != nil {
		t.Fatalf("valid token: %v", err)
	}
	if id.ID != "u1" || id.Email != "a@b.c" {
		t.Fatalf("identity = %+v", id)
	}
	if len(repo.touched) != 1 {
		t.Fatalf("valid token must touch last_used, got %d touches", len(repo.touched))
	}

	for name, token := range map[string]string{
		"unknown": "nope",
		"expired": "expired",
		"blank":   "   ",
	} {
		if _, err := svc.Verify(context.Background(), token); perr.CodeOf(err) != perr.ErrorCodeUnauthorized {
			t.Errorf("%s token: code = %v, want Unauthorized", name, perr.CodeOf(err))
		}
	}

	if _, err := svc.Verify(context.Background(), "eternal"); err != nil {
		t.Fatalf("non-expiring token: %v", err)
	}
}
