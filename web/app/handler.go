package app

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/JaimeStill/unidelivery/internal/shell"
	"github.com/JaimeStill/unidelivery/pkg/handlers"
	"github.com/JaimeStill/unidelivery/pkg/navigation"
)

// paramPrefix marks query parameters that bind route params in
// name-based resolution, as in ?name=users&param.campain=42.
const paramPrefix = "param."

// RouteInfo describes one entry of the route table.
type RouteInfo struct {
	Name   string   `json:"name" yaml:"name"`
	Path   string   `json:"path" yaml:"path"`
	View   string   `json:"view" yaml:"view"`
	Params []string `json:"params,omitempty" yaml:"params,omitempty"`
}

// NewRouteInfo describes r.
func NewRouteInfo(r navigation.Route) RouteInfo {
	return RouteInfo{
		Name:   r.Name,
		Path:   r.Path,
		View:   navigation.ViewName(r.View),
		Params: r.ParamNames(),
	}
}

// MatchInfo describes a resolved navigation.
type MatchInfo struct {
	Name   string            `json:"name" yaml:"name"`
	Path   string            `json:"path" yaml:"path"`
	Href   string            `json:"href" yaml:"href"`
	View   string            `json:"view" yaml:"view"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Query  url.Values        `json:"query,omitempty" yaml:"query,omitempty"`
}

// NewMatchInfo describes m; href is the link the client navigates to.
func NewMatchInfo(m *navigation.Match, href string) MatchInfo {
	return MatchInfo{
		Name:   m.Route.Name,
		Path:   m.Path,
		Href:   href,
		View:   navigation.ViewName(m.Route.View),
		Params: m.Params,
		Query:  m.Query,
	}
}

// Handler serves the app module's pages and API.
type Handler struct {
	cfg    Config
	logger *slog.Logger
}

func newHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		cfg:    cfg,
		logger: logger.With("module", "app", "role", string(cfg.Role)),
	}
}

// newShell creates a shell for a single request. Requests share the table
// but never a current route.
func (h *Handler) newShell() *shell.Shell {
	opts := []shell.Option{
		shell.WithLogger(h.logger),
		shell.WithRole(string(h.cfg.Role)),
		shell.WithFallback(h.cfg.Fallback, h.cfg.Views.NotFound()),
	}
	if h.cfg.Metrics != nil {
		opts = append(opts, shell.WithMetrics(h.cfg.Metrics))
	}
	return shell.New(h.cfg.Table, opts...)
}

// ListRoutes lists the route table in declaration order.
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	table := h.cfg.Table.Routes()
	out := make([]RouteInfo, 0, len(table))
	for _, route := range table {
		out = append(out, NewRouteInfo(route))
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// Resolve resolves ?path= or ?name= with param.<key> bindings and
// describes the match.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	loc, err := locationFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	m, err := h.newShell().Navigate(r.Context(), loc)
	if err != nil {
		handlers.RespondError(w, h.logger, navigation.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, NewMatchInfo(m, h.cfg.Views.Href(m.FullPath())))
}

// Page resolves the request path below the module prefix and renders the
// matched view. Unresolved paths follow the fallback policy: not_found
// renders the not-found view and blank an empty page, both with 404, while
// keep answers 204 so the client stays on its current page.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	loc := navigation.Location{
		Path:  h.tablePath(r),
		Query: r.URL.Query(),
	}

	sh := h.newShell()
	status := http.StatusOK
	if _, err := sh.Navigate(r.Context(), loc); err != nil {
		status = navigation.MapHTTPStatus(err)
		if status != http.StatusNotFound {
			http.Error(w, http.StatusText(status), status)
			return
		}
		if sh.Policy() == shell.PolicyKeep {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	var buf bytes.Buffer
	if err := sh.Render(&buf); err != nil {
		h.logger.Error("render failed", "path", loc.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// tablePath returns the escaped request path below the module prefix. The
// table unescapes param segments itself, so the decoded r.URL.Path would
// unescape them twice.
func (h *Handler) tablePath(r *http.Request) string {
	path := strings.TrimPrefix(r.URL.EscapedPath(), h.cfg.BasePath)
	if path == "" {
		return "/"
	}
	return path
}

func locationFromQuery(q url.Values) (navigation.Location, error) {
	if path := q.Get("path"); path != "" {
		return navigation.Location{Path: path}, nil
	}

	name := q.Get("name")
	if name == "" {
		return navigation.Location{}, ErrMissingTarget
	}

	loc := navigation.Location{Name: name}
	for key, values := range q {
		if k, ok := strings.CutPrefix(key, paramPrefix); ok && len(values) > 0 {
			if loc.Params == nil {
				loc.Params = navigation.Params{}
			}
			loc.Params[k] = values[0]
		}
	}
	return loc, nil
}
