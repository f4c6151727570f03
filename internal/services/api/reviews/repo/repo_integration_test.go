//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"criticode/internal/core/analysis"
	perr "criticode/internal/platform/errors"
	"criticode/internal/platform/store"
	"criticode/internal/services/api/reviews/domain"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const schema = `
	CREATE TABLE reviews (
		id          TEXT PRIMARY KEY,
		owner_id    TEXT NOT NULL,
		code        TEXT NOT NULL,
		language    TEXT NOT NULL,
		file_name   TEXT,
		analysis    JSONB NOT NULL,
		issue_count INT NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX reviews_owner_created_idx ON reviews (owner_id, created_at DESC);
`

func openRepo(t *testing.T, ctx context.Context, dsn string) domain.Repo {
	t.Helper()

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2, ConnectRetries: 5},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := st.PG.Exec(ctx, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return NewPG().Bind(st.PG)
}

func sample(owner, lang, file string) domain.CreateInput {
	res := analysis.Empty()
	res.Security = append(res.Security, analysis.SecurityIssue{
		Severity: analysis.SeverityHigh, Issue: "SQL injection", Line: 3,
	})
	return domain.CreateInput{
		OwnerID:  owner,
		Code:     "SELECT * FROM users WHERE id = $id",
		Language: lang,
		FileName: file,
		Analysis: res,
	}
}

func TestReviewsRepo_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	repo := openRepo(t, ctx, dsn)

	// insert and round-trip
	rev, err := repo.Insert(ctx, sample("alice", "sql", "q.sql"))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if rev.ID == "" || rev.CreatedAt.IsZero() {
		t.Fatalf("insert did not populate id/timestamps: %+v", rev)
	}

	got, err := repo.GetByID(ctx, rev.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OwnerID != "alice" || len(got.Analysis.Security) != 1 {
		t.Fatalf("round trip mangled: %+v", got)
	}
	if got.Analysis.Performance == nil || got.Analysis.BestPractices == nil || got.Analysis.Refactoring == nil {
		t.Fatal("all four collections must be present after load")
	}

	if _, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing id must be NotFound, got %v", err)
	}

	// second owner and language filter
	if _, err := repo.Insert(ctx, sample("bob", "go", "main.go")); err != nil {
		t.Fatalf("insert bob: %v", err)
	}
	if _, err := repo.Insert(ctx, sample("alice", "go", "tool.go")); err != nil {
		t.Fatalf("insert alice go: %v", err)
	}

	items, total, err := repo.List(ctx, "alice", domain.ListInput{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("list total=%d items=%d, want 2/2", total, len(items))
	}

	items, total, err = repo.List(ctx, "alice", domain.ListInput{Page: 1, Limit: 10, Language: "GO"})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if total != 1 || items[0].Language != "go" {
		t.Fatalf("case-insensitive language filter: total=%d items=%+v", total, items)
	}

	// search scoped to owner
	items, total, err = repo.Search(ctx, "alice", domain.SearchInput{Query: "users", Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 2 {
		t.Fatalf("search total=%d, want 2", total)
	}
	if _, total, _ = repo.Search(ctx, "bob", domain.SearchInput{Query: "tool", Page: 1, Limit: 10}); total != 0 {
		t.Fatalf("search must not cross owners, total=%d", total)
	}

	// stats primitives
	if n, _ := repo.CountByOwner(ctx, "alice"); n != 2 {
		t.Fatalf("count=%d, want 2", n)
	}
	langs, err := repo.LanguagesByOwner(ctx, "alice")
	if err != nil || len(langs) != 2 {
		t.Fatalf("languages=%v err=%v", langs, err)
	}
	recent, err := repo.Recent(ctx, "alice", 1)
	if err != nil || len(recent) != 1 {
		t.Fatalf("recent=%v err=%v", recent, err)
	}

	// ownership enforced inside the delete predicate
	deleted, err := repo.DeleteOwned(ctx, rev.ID, "bob")
	if err != nil || deleted {
		t.Fatalf("foreign delete must be a no-op, deleted=%v err=%v", deleted, err)
	}
	if exists, _ := repo.Exists(ctx, rev.ID); !exists {
		t.Fatal("row must survive a foreign delete")
	}
	deleted, err = repo.DeleteOwned(ctx, rev.ID, "alice")
	if err != nil || !deleted {
		t.Fatalf("owner delete failed, deleted=%v err=%v", deleted, err)
	}
	if exists, _ := repo.Exists(ctx, rev.ID); exists {
		t.Fatal("row must be gone after owner delete")
	}
}
