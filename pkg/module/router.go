package module

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is the root handler: it serves native routes such as health
// checks and dispatches everything under a module prefix to that module.
type Router struct {
	mux *chi.Mux
}

// NewRouter creates an empty root router. Middleware applies to native
// routes and mounted modules alike.
func NewRouter(middlewares ...func(http.Handler) http.Handler) *Router {
	mux := chi.NewRouter()
	mux.Use(middlewares...)
	return &Router{mux: mux}
}

// HandleFunc registers a native route on the root router.
func (r *Router) HandleFunc(method, pattern string, h http.HandlerFunc) {
	r.mux.MethodFunc(method, pattern, h)
}

// Handle registers a native handler for every method on pattern.
func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

// Mount serves m under its prefix. The module sees the full request path;
// chi records the remainder after the prefix in its route context.
func (r *Router) Mount(m *Module) {
	r.mux.Mount(m.prefix, m.Handler())
}

// Redirect answers GET requests for pattern with a temporary redirect to
// target.
func (r *Router) Redirect(pattern, target string) {
	r.mux.Get(pattern, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, target, http.StatusFound)
	})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
