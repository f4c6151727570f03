// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	"criticode/internal/core/version"
	modkit "criticode/internal/modkit"
	"criticode/internal/modkit/httpkit"
	str "criticode/internal/platform/strings"

	metahttp "criticode/internal/services/api/meta/http"
)

// Module serves health, readiness and version endpoints
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// New constructs the meta module; startedAt anchors the uptime report
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	external := b.Register // non-nil, Build defaults it
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Service,
			StartedAt:   m.startedAt,
			PG:          deps.PG,
		})
		external(r)
	}

	return m
}

// MountRoutes mounts the meta endpoints under the module prefix
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

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Ports exposes nothing; meta is a leaf
func (m *Module) Ports() any { return nil }
