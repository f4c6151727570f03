package ratelimit

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func fixedClock(start time.Time) (*time.Time, func() time.Time) {
	now := start
	return &now, func() time.Time { return now }
}

func newTestStore(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()
	s := NewMemoryStore(0)
	t.Cleanup(s.Close)
	now, clock := fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.now = clock
	return s, now
}

func TestLimiterBudget(t *testing.T) {
	s, _ := newTestStore(t)
	l := New(s)
	p := Policy{Name: "t", Window: time.Minute, Limit: 3}

	for i := 1; i <= 3; i++ {
		d, err := l.Allow(context.Background(), p, "a")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !d.Allowed {
			t.Fatalf("request %d within budget must be admitted", i)
		}
		if d.Remaining != 3-i {
			t.Fatalf("request %d: remaining = %d, want %d", i, d.Remaining, 3-i)
		}
	}

	d, err := l.Allow(context.Background(), p, "a")
	if err != nil {
		t.Fatalf("Allow overflow: %v", err)
	}
	if d.Allowed {
		t.Fatal("request beyond budget must be denied")
	}
	if d.Used != 4 || d.Remaining != 0 {
		t.Fatalf("overflow decision: used=%d remaining=%d", d.Used, d.Remaining)
	}
}

func TestLimiterWindowReset(t *testing.T) {
	s, now := newTestStore(t)
	l := New(s)
	p := Policy{Name: "t", Window: time.Minute, Limit: 1}

	if d, _ := l.Allow(context.Background(), p, "a"); !d.Allowed {
		t.Fatal("first request must pass")
	}
	if d, _ := l.Allow(context.Background(), p, "a"); d.Allowed {
		t.Fatal("second request in window must be denied")
	}

	*now = now.Add(time.Minute)
	if d, _ := l.Allow(context.Background(), p, "a"); !d.Allowed {
		t.Fatal("request after window reset must be admitted")
	}
}

func TestLimiterIdentitiesIsolated(t *testing.T) {
	s, _ := newTestStore(t)
	l := New(s)
	p := Policy{Name: "t", Window: time.Minute, Limit: 1}

	if d, _ := l.Allow(context.Background(), p, "a"); !d.Allowed {
		t.Fatal("identity a must pass")
	}
	if d, _ := l.Allow(context.Background(), p, "b"); !d.Allowed {
		t.Fatal("identity b holds its own budget")
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	s := NewMemoryStore(0)
	defer s.Close()

	const goroutines, hits = 8, 50
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < hits; i++ {
				if _, _, err := s.Hit(context.Background(), "k", time.Hour); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	count, _, err := s.Hit(context.Background(), "k", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if count != goroutines*hits+1 {
		t.Fatalf("count = %d, want %d", count, goroutines*hits+1)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	s, now := newTestStore(t)

	if _, _, err := s.Hit(context.Background(), "old", time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Hit(context.Background(), "fresh", time.Hour); err != nil {
		t.Fatal(err)
	}

	*now = now.Add(2 * time.Minute)
	if n := s.sweep(); n != 1 {
		t.Fatalf("sweep reaped %d windows, want 1", n)
	}
	if _, ok := s.windows["old"]; ok {
		t.Fatal("expired window must be reaped")
	}
	if _, ok := s.windows["fresh"]; !ok {
		t.Fatal("live window must survive the sweep")
	}
}

func TestGeneralMiddleware(t *testing.T) {
	s, _ := newTestStore(t)
	l := New(s)

	next := stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
	})
	h := General(l, "/health")(next)

	// run past the general budget from one address
	var last *httptest.ResponseRecorder
	for i := 0; i <= PolicyGeneral.Limit; i++ {
		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/reviews", nil)
		req.RemoteAddr = "10.1.2.3:5555"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
	}
	if last.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("overflow request: status = %d, want 429", last.Code)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Fatal("denied responses carry Retry-After")
	}
	if last.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("X-RateLimit-Remaining = %q, want 0", last.Header().Get("X-RateLimit-Remaining"))
	}

	var body struct {
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode 429 body: %v", err)
	}
	for _, key := range []string{"retryAfter", "limit", "usage"} {
		if _, ok := body.Details[key]; !ok {
			t.Errorf("429 details missing %q: %v", key, body.Details)
		}
	}

	// health is exempt even when the address is exhausted
	req := httptest.NewRequest(stdhttp.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("health must bypass the limiter, got %d", rec.Code)
	}
}

func TestAuthClassDenialMessage(t *testing.T) {
	s, _ := newTestStore(t)
	l := New(s)

	next := stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusOK)
	})
	h := ForClass(l, PolicyAuth)(next)

	var last *httptest.ResponseRecorder
	for i := 0; i <= PolicyAuth.Limit; i++ {
		req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/auth/me", nil)
		req.RemoteAddr = "10.9.8.7:4444"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
	}
	if last.Code != stdhttp.StatusTooManyRequests {
		t.Fatalf("overflow request: status = %d, want 429", last.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode 429 body: %v", err)
	}
	if body.Error != PolicyAuth.Message {
		t.Fatalf("auth denial message = %q, want %q", body.Error, PolicyAuth.Message)
	}
}
