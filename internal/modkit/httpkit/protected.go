package httpkit

import (
	"criticode/internal/platform/net/middleware"
)

// Protected groups routes under required bearer auth
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}

// Resolved groups routes under optional bearer auth: a valid credential
// attaches an identity, anything else proceeds anonymously
func Resolved(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(AuthOptional(p))
		fn(gr)
	})
}
