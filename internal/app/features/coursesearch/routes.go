// internal/app/features/coursesearch/routes.go
package coursesearch

import "github.com/go-chi/chi/v5"

// Routes serves the HTML search page.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSearchPage)
	return r
}

// APIRoutes serves the JSON search endpoint.
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSearchAPI)
	return r
}
