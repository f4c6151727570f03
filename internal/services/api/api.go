// Package api provides the HTTP API for the application
package api

import (
	"net/http"

	"criticode/internal/platform/config"
	"criticode/internal/platform/logger"
	phttp "criticode/internal/platform/net/http"
	"criticode/internal/platform/store"

	"criticode/internal/modkit"
	"criticode/internal/modkit/httpkit"
	"criticode/internal/modkit/module"

	"criticode/internal/adapters/llm"
	analyzersvc "criticode/internal/services/analyzer/service"
	analyzemod "criticode/internal/services/api/analyze/module"
	authmod "criticode/internal/services/api/auth/module"
	metamod "criticode/internal/services/api/meta/module"
	reviewsmod "criticode/internal/services/api/reviews/module"
	authrepo "criticode/internal/services/auth/repo"
	authsvc "criticode/internal/services/auth/service"
	"criticode/internal/services/ratelimit"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Limiter admits requests; main owns its counter store lifecycle
	Limiter *ratelimit.Limiter

	// Model is the completion backend, nil when unconfigured
	Model llm.Completer
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// bearer verification backed by Postgres token rows
	verifier := authsvc.New(deps.PG, authrepo.NewPG())
	authPort := httpkit.NewPortFunc(func(req *http.Request, token string) (string, string, error) {
		id, err := verifier.Verify(req.Context(), token)
		if err != nil {
			return "", "", err
		}
		return id.ID, id.Email, nil
	})

	invoker := analyzersvc.New(opt.Model, analyzersvc.Config{})

	reviews := reviewsmod.New(deps)
	analyze := analyzemod.New(deps, analyzemod.PipelineDeps{
		Auth:    authPort,
		Limiter: opt.Limiter,
		Invoker: invoker,
		Store:   reviews.Service(),
	})
	auth := authmod.New(deps, authPort, opt.Limiter)

	mods := []module.Module{
		metamod.New(deps),
		analyze,
		auth,
	}

	// every route shares the catch-all budget; health probes stay exempt
	stack := append(httpkit.CommonStack(),
		ratelimit.General(opt.Limiter, httpkit.HealthPath, "/api/v1/meta/health", "/api/v1/meta/ready"))

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}

		// review management always requires a verified identity
		module.Register(reviews.Name(), reviews.Ports())
		httpkit.Protected(api, authPort, func(gr httpkit.Router) {
			reviews.MountRoutes(gr)
		})
	})
}
