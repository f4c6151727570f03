package middleware

import (
	"net/http"

	pnet "criticode/internal/platform/net"
)

// AuthPort verifies a request credential and yields the caller identity
type AuthPort interface {
	// Parse returns the verified user id and email from the request or an error
	// a missing or malformed Authorization header is an error too
	Parse(r *http.Request) (userID string, email string, err error)
}

// Auth requires a verified identity; requests failing verification are rejected
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, email, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid, email)))
		})
	}
}

// AuthOptional resolves an identity when a valid credential is present and
// lets the request proceed anonymously otherwise. It never rejects
func AuthOptional(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, email, err := p.Parse(r)
			if err != nil {
				// invalid, expired, or absent credential: anonymous
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithUser(r.Context(), uid, email)))
		})
	}
}
