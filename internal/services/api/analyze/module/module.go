// Package module wires the analyze pipeline into the API using modkit
package module

import (
	"net/http"

	modkit "criticode/internal/modkit"
	"criticode/internal/modkit/httpkit"
	"criticode/internal/platform/net/middleware"
	str "criticode/internal/platform/strings"
	analyzerdomain "criticode/internal/services/analyzer/domain"
	analyzehttp "criticode/internal/services/api/analyze/http"
	analyzesvc "criticode/internal/services/api/analyze/service"
	reviewsdomain "criticode/internal/services/api/reviews/domain"
	"criticode/internal/services/ratelimit"
)

// PipelineDeps are the cross-module ports the analyze pipeline consumes
type PipelineDeps struct {
	// Auth resolves optional bearer identities; anonymous callers pass through
	Auth middleware.AuthPort
	// Limiter admits requests under the per-identity analysis budgets
	Limiter *ratelimit.Limiter
	// Invoker runs the model
	Invoker analyzerdomain.InvokerPort
	// Store persists results for identified callers, best effort
	Store reviewsdomain.WriterPort
}

// Module implements the analyze module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws []func(http.Handler) http.Handler

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *analyzesvc.Svc
}

// New constructs the analyze module
func New(deps modkit.Deps, pd PipelineDeps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("analyze"),
		modkit.WithPrefix("/analyze"),
	}, opts...)...)

	svc := analyzesvc.New(pd.Invoker, pd.Store)

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
		// identity first, then the class-matched budget
		httpkit.Resolved(r, pd.Auth, func(gr httpkit.Router) {
			gr.Use(ratelimit.Analyze(pd.Limiter))
			analyzehttp.Register(gr, m.svc)
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

// Ports exposes nothing yet; the pipeline is a leaf module
func (m *Module) Ports() any { return nil }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }
