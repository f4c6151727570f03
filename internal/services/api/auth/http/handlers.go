// Package http provides http transport for the auth surface
package http

import (
	stdhttp "net/http"

	"criticode/internal/modkit/httpkit"
)

// Register mounts auth endpoints on the given router
func Register(r httpkit.Router) {
	httpkit.Get(r, "/me", me)
}

// me echoes the verified identity attached by the auth middleware
func me(r *stdhttp.Request) (any, error) {
	return map[string]string{
		"id":    httpkit.MustUser(r),
		"email": httpkit.UserEmail(r),
	}, nil
}
