// Package http provides http transport for reviews
package http

import (
	stdhttp "net/http"
	"strconv"

	"criticode/internal/modkit/httpkit"
	"criticode/internal/services/api/reviews/domain"
	svc "criticode/internal/services/api/reviews/service"
)

// Register mounts review endpoints on the given router.
// Every route runs behind required bearer auth
func Register(r httpkit.Router, s *svc.Svc) {
	h := &handlers{svc: s}

	r.Get("/", httpkit.Handle(h.list))
	r.Get("/search", httpkit.Handle(h.search))
	httpkit.Get(r, "/stats", h.stats)
	httpkit.Get(r, "/{id}", h.getByID)
	httpkit.Delete(r, "/{id}", h.remove)
}

type handlers struct{ svc *svc.Svc }

func (h *handlers) list(r *stdhttp.Request) httpkit.Response {
	in := domain.ListInput{
		Page:     intQuery(r, "page"),
		Limit:    intQuery(r, "limit"),
		Language: r.URL.Query().Get("language"),
		SortBy:   r.URL.Query().Get("sortBy"),
	}
	pg, err := h.svc.List(r.Context(), httpkit.MustUser(r), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(pg.Items, pg.Total, pg.TotalPages, pg.Page, pg.Limit)
}

func (h *handlers) search(r *stdhttp.Request) httpkit.Response {
	in := domain.SearchInput{
		Query: r.URL.Query().Get("q"),
		Page:  intQuery(r, "page"),
		Limit: intQuery(r, "limit"),
	}
	pg, err := h.svc.Search(r.Context(), httpkit.MustUser(r), in)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.List(pg.Items, pg.Total, pg.TotalPages, pg.Page, pg.Limit)
}

func (h *handlers) stats(r *stdhttp.Request) (any, error) {
	return h.svc.Stats(r.Context(), httpkit.MustUser(r))
}

func (h *handlers) getByID(r *stdhttp.Request) (any, error) {
	return h.svc.GetByID(r.Context(), httpkit.Param(r, "id"), httpkit.MustUser(r))
}

func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), httpkit.Param(r, "id"), httpkit.MustUser(r)); err != nil {
		return nil, err
	}
	return map[string]any{"deleted": true}, nil
}

func intQuery(r *stdhttp.Request, name string) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
