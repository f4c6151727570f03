package http

import "net/http"

// Handler is the plain function form every route handler reduces to
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the slim routing seam modules mount against, keeping chi
// out of their import graphs
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Put(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)

	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Mux() http.Handler
}
