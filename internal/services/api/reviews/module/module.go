// Package module wires reviews into the API using modkit
package module

import (
	"net/http"

	modkit "criticode/internal/modkit"
	"criticode/internal/modkit/httpkit"
	str "criticode/internal/platform/strings"
	reviewshttp "criticode/internal/services/api/reviews/http"
	reviewsrepo "criticode/internal/services/api/reviews/repo"
	reviewssvc "criticode/internal/services/api/reviews/service"
)

// Module implements the reviews module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *reviewssvc.Svc
}

// New constructs the reviews module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reviews"),
		modkit.WithPrefix("/reviews"),
	}, opts...)...)

	svc := reviewssvc.New(deps.PG, reviewsrepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}

	external := b.Register // non-nil, Build defaults it
	m.register = func(r httpkit.Router) {
		reviewshttp.Register(r, m.svc)
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

// Service exposes the review store for cross-module wiring
func (m *Module) Service() *reviewssvc.Svc { return m.svc }

// Ports returns the review store surface other modules consume
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
