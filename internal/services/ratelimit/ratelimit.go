// Package ratelimit enforces per-identity fixed-window request budgets
package ratelimit

import (
	"context"
	"time"
)

// Policy is one admission class: a window length and a request budget.
// Message, when set, replaces the generic rejection text for the class
type Policy struct {
	Name    string
	Window  time.Duration
	Limit   int
	Message string
}

// The admission classes. Auth endpoints get a short, tight window; code
// analysis budgets differ by whether the caller is identified; everything
// else falls under the general class
var (
	PolicyAuth = Policy{
		Name:    "auth",
		Window:  time.Minute,
		Limit:   5,
		Message: "too many authentication attempts, try again later",
	}
	PolicyAnalyzeAnon = Policy{Name: "analyze_anon", Window: time.Hour, Limit: 5}
	PolicyAnalyzeUser = Policy{Name: "analyze_user", Window: time.Hour, Limit: 30}
	PolicyGeneral     = Policy{Name: "general", Window: 15 * time.Minute, Limit: 100}
)

// CounterStore is the counter backend seam. Hit records one request against
// key's current window and returns the post-increment count together with the
// instant the window resets. Implementations must make the read-modify-write
// atomic per key
type CounterStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)
}

// Decision is the outcome of one admission check
type Decision struct {
	Allowed   bool
	Limit     int
	Used      int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds until the window resets, at least 1
func (d Decision) RetryAfter() int {
	secs := int(time.Until(d.ResetAt).Round(time.Second).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}

// Limiter applies policies against a counter store
type Limiter struct {
	store CounterStore
}

// New builds a Limiter over the given counter backend
func New(store CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Allow records one request for identity under p and decides admission.
// The request that overflows the budget is counted but denied
func (l *Limiter) Allow(ctx context.Context, p Policy, identity string) (Decision, error) {
	key := p.Name + ":" + identity
	count, resetAt, err := l.store.Hit(ctx, key, p.Window)
	if err != nil {
		return Decision{}, err
	}
	remaining := p.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{
		Allowed:   count <= p.Limit,
		Limit:     p.Limit,
		Used:      count,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
