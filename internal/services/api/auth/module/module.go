// Package module wires the auth surface into the API using modkit
package module

import (
	"net/http"

	modkit "criticode/internal/modkit"
	"criticode/internal/modkit/httpkit"
	"criticode/internal/platform/net/middleware"
	str "criticode/internal/platform/strings"
	authhttp "criticode/internal/services/api/auth/http"
	"criticode/internal/services/ratelimit"
)

// Module implements the auth module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the auth module. port verifies bearer tokens, limiter
// applies the tight auth-class budget before credentials are even checked
func New(deps modkit.Deps, port middleware.AuthPort, limiter *ratelimit.Limiter, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("auth"),
		modkit.WithPrefix("/auth"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
	}

	external := b.Register // non-nil, Build defaults it
	m.register = func(r httpkit.Router) {
		r.Use(ratelimit.ForClass(limiter, ratelimit.PolicyAuth))
		httpkit.Protected(r, port, func(gr httpkit.Router) {
			authhttp.Register(gr)
		})
		external(r)
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports exposes nothing; verification lives in services/auth
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
