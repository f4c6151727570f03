package httpkit

import (
	"net/http"
	"time"

	phttp "criticode/internal/platform/net/http"
	"criticode/internal/platform/net/middleware"
)

// HealthPath is exempt from rate limiting and auth unconditionally
const HealthPath = "/health"

// CommonStack returns a baseline per module middleware slice
// compose with your auth or rate limit middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Heartbeat(HealthPath),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
	}
}

// Auth wires the required-identity auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	// middleware expects write func(w http.ResponseWriter, status int, body any)
	// use phttp.JSON which matches that signature
	return middleware.Auth(p, phttp.JSON)
}

// AuthOptional wires the anonymous-tolerant auth middleware
func AuthOptional(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.AuthOptional(p)
}
