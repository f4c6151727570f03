package httpkit

import (
	"net/http"
	"strings"

	perrs "criticode/internal/platform/errors"
)

// TokenFunc verifies a bearer token and returns the user id and email
// expiry and subject-existence checks belong to the verifier behind it
type TokenFunc func(r *http.Request, token string) (userID string, email string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse extracts the verified user id and email from an Authorization Bearer token
// returns unauthorized when the header is missing, malformed, or the parser rejects it
func (p *Port) Parse(r *http.Request) (string, string, error) {
	authz := r.Header.Get("Authorization")
	s := strings.TrimSpace(authz)
	if s == "" {
		return "", "", perrs.Unauthorizedf("missing bearer token")
	}
	ls := strings.ToLower(s)
	const prefix = "bearer"
	if !strings.HasPrefix(ls, prefix) {
		return "", "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", "", perrs.Unauthorizedf("missing bearer token")
	}

	if p.parse == nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}

	uid, email, err := p.parse(r, raw)
	if err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
			return "", "", err
		}
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, email, nil
}
