// Package service implements the model invoker with timeouts and retries
package service

import (
	"context"
	"time"

	"criticode/internal/adapters/llm"
	"criticode/internal/core/analysis"
	perr "criticode/internal/platform/errors"
	"criticode/internal/platform/logger"
	"criticode/internal/services/analyzer/domain"
)

// Config tunes the invoker. Zero values fall back to the defaults
type Config struct {
	// AttemptTimeout bounds a single model call
	AttemptTimeout time.Duration
	// MaxAttempts is the total number of tries, not the number of retries
	MaxAttempts int
	// BackoffBase is the wait before attempt n+1, doubled per retry
	BackoffBase time.Duration
}

func (c Config) withDefaults() Config {
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = 15 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 2
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = time.Second
	}
	return c
}

// Svc drives the model and normalizes its output
type Svc struct {
	completer llm.Completer
	cfg       Config

	sleep func(time.Duration)
}

var _ domain.InvokerPort = (*Svc)(nil)

// New constructs the analyzer. completer may be nil when the provider is not
// configured; Analyze then fails with an Unavailable-coded error
func New(completer llm.Completer, cfg Config) *Svc {
	return &Svc{completer: completer, cfg: cfg.withDefaults(), sleep: time.Sleep}
}

// Analyze validates the request, invokes the model with per-attempt timeouts,
// and returns the normalized result. Parse failures are terminal; transient
// failures are retried with exponential backoff up to MaxAttempts
func (s *Svc) Analyze(ctx context.Context, code, language string) (analysis.Result, error) {
	if s.completer == nil {
		return analysis.Result{}, perr.Unavailablef("analysis provider is not configured")
	}
	if code == "" {
		return analysis.Result{}, perr.InvalidArgf("code must not be empty")
	}
	if language == "" {
		return analysis.Result{}, perr.InvalidArgf("language must not be empty")
	}
	if len(code) > analysis.MaxCodeChars {
		return analysis.Result{}, perr.InvalidArgf(
			"code exceeds the %d character limit", analysis.MaxCodeChars)
	}

	user := analysis.BuildPrompt(code, language)
	log := logger.C(ctx)

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			wait := s.cfg.BackoffBase << (attempt - 2)
			s.sleep(wait)
		}
		if err := ctx.Err(); err != nil {
			return analysis.Result{}, perr.Timeoutf("analysis aborted: %v", err)
		}

		raw, err := s.attempt(ctx, user)
		if err != nil {
			if !retryable(err) {
				return analysis.Result{}, err
			}
			log.Warn().Err(err).Int("attempt", attempt).Msg("model attempt failed")
			lastErr = err
			continue
		}

		res, err := analysis.Parse(raw)
		if err != nil {
			// a malformed payload will not improve on retry
			return analysis.Result{}, err
		}
		return res, nil
	}

	return analysis.Result{}, perr.Wrap(lastErr, perr.ErrorCodeUnavailable,
		"analysis failed after retries")
}

// attempt runs one bounded model call. The call runs in its own goroutine so
// a provider that ignores cancellation cannot stall the pipeline past the
// attempt deadline
func (s *Svc) attempt(ctx context.Context, user string) (string, error) {
	actx, cancel := context.WithTimeout(ctx, s.cfg.AttemptTimeout)
	defer cancel()

	type outcome struct {
		raw string
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		raw, err := s.completer.Complete(actx, analysis.SystemPrompt, user)
		ch <- outcome{raw: raw, err: err}
	}()

	select {
	case out := <-ch:
		return out.raw, out.err
	case <-actx.Done():
		return "", perr.Timeoutf("model call exceeded %s", s.cfg.AttemptTimeout)
	}
}

// retryable classifies invoker failures. Timeouts and provider outages are
// worth another attempt; everything else is terminal
func retryable(err error) bool {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeTimeout, perr.ErrorCodeUnavailable:
		return true
	default:
		return perr.Retryable(err)
	}
}
