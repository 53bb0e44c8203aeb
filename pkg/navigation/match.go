package navigation

import (
	"net/url"
	"strings"
)

// Params holds the values bound to a route's parameter segments.
type Params map[string]string

// Get returns the value bound to name, or "" when unbound.
func (p Params) Get(name string) string {
	return p[name]
}

// Location is a navigation request. A request addresses the table either
// by Path, which may carry a query string, or by route Name plus Params.
type Location struct {
	Path   string
	Name   string
	Params Params
	Query  url.Values
}

func (l Location) String() string {
	if l.Name != "" {
		return "name:" + l.Name
	}
	return l.Path
}

// Match is the outcome of a successful navigation: the route that accepted
// the request, the concrete path, and the values bound to its parameters.
type Match struct {
	Route  Route
	Path   string
	Params Params
	Query  url.Values
}

// FullPath returns the matched path with its query string, if any.
func (m *Match) FullPath() string {
	if len(m.Query) == 0 {
		return m.Path
	}
	return m.Path + "?" + m.Query.Encode()
}

// splitTarget separates a request target into its path and query. The
// fragment is discarded and an empty path means the root.
func splitTarget(target string) (string, url.Values) {
	target, _, _ = strings.Cut(target, "#")
	path, rawQuery, _ := strings.Cut(target, "?")
	if path == "" {
		path = "/"
	}

	var query url.Values
	if rawQuery != "" {
		query, _ = url.ParseQuery(rawQuery)
	}
	return path, query
}

func mergeQuery(dst, src url.Values) url.Values {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(url.Values, len(src))
	}
	for k, v := range src {
		dst[k] = append(dst[k], v...)
	}
	return dst
}
