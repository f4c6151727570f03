package ratelimit

import (
	"net"
	stdhttp "net/http"
	"strconv"

	perr "criticode/internal/platform/errors"
	"criticode/internal/platform/logger"
	pnet "criticode/internal/platform/net"
	phttp "criticode/internal/platform/net/http"
)

// General admits every request under PolicyGeneral keyed by client IP.
// Paths listed in exempt bypass the limiter entirely
func General(l *Limiter, exempt ...string) func(stdhttp.Handler) stdhttp.Handler {
	skip := make(map[string]struct{}, len(exempt))
	for _, p := range exempt {
		skip[p] = struct{}{}
	}
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}
			admit(l, PolicyGeneral, "ip:"+clientIP(r), next, w, r)
		})
	}
}

// ForClass admits requests under p keyed by client IP. Used for the auth
// endpoints where the caller is not yet identified
func ForClass(l *Limiter, p Policy) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			admit(l, p, "ip:"+clientIP(r), next, w, r)
		})
	}
}

// Analyze admits analysis requests. Identified callers get the larger
// per-user budget; anonymous callers share the tighter per-IP budget.
// The anonymous class never charges an identified caller
func Analyze(l *Limiter) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			if uid := pnet.UserID(r.Context()); uid != "" {
				admit(l, PolicyAnalyzeUser, "user:"+uid, next, w, r)
				return
			}
			admit(l, PolicyAnalyzeAnon, "ip:"+clientIP(r), next, w, r)
		})
	}
}

func admit(l *Limiter, p Policy, identity string, next stdhttp.Handler, w stdhttp.ResponseWriter, r *stdhttp.Request) {
	d, err := l.Allow(r.Context(), p, identity)
	if err != nil {
		// a broken counter backend must not take the API down
		logger.C(r.Context()).Error().Err(err).Str("class", p.Name).Msg("rate counter failure, admitting")
		next.ServeHTTP(w, r)
		return
	}

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

	if !d.Allowed {
		retry := d.RetryAfter()
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		msg := p.Message
		if msg == "" {
			msg = "rate limit exceeded for " + p.Name
		}
		rlErr := perr.TooManyRequestsf("%s", msg)
		rlErr = perr.WithDetail(rlErr, "retryAfter", retry)
		rlErr = perr.WithDetail(rlErr, "limit", d.Limit)
		rlErr = perr.WithDetail(rlErr, "usage", d.Used)
		phttp.RespondError(w, r, rlErr)
		return
	}
	next.ServeHTTP(w, r)
}

// clientIP extracts the peer address; the RealIP middleware has already
// folded X-Forwarded-For into RemoteAddr upstream
func clientIP(r *stdhttp.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
