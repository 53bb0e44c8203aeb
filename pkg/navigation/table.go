// Package navigation builds immutable route tables and resolves navigation
// requests against them.
//
// A table is an ordered list of routes. Resolution scans the routes in
// declaration order and the first route whose pattern accepts the path
// wins. Tables are read-only after construction and safe for concurrent
// use.
//
// Matching is case-sensitive: /Contacts does not match /contacts. A single
// trailing slash is ignored, so /contacts/ matches /contacts. Param
// segments are percent-decoded once, so callers pass the escaped path.
package navigation

import "fmt"

type entry struct {
	route   Route
	pattern pattern
}

// Table is an immutable, ordered set of routes for one application variant.
type Table struct {
	entries []entry
	byName  map[string]int
}

// New builds a table from routes in declaration order. Every route must be
// valid, names and paths must be unique, and exactly one route must serve
// the root path "/".
func New(routes ...Route) (*Table, error) {
	t := &Table{
		entries: make([]entry, 0, len(routes)),
		byName:  make(map[string]int, len(routes)),
	}
	paths := make(map[string]string, len(routes))
	home := false

	for _, r := range routes {
		if err := r.validate(); err != nil {
			return nil, err
		}

		p, err := parsePattern(r.Path)
		if err != nil {
			return nil, err
		}

		if _, exists := t.byName[r.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, r.Name)
		}

		key := p.key()
		if prev, exists := paths[key]; exists {
			return nil, fmt.Errorf("%w: %s (routes %s and %s)", ErrDuplicatePath, r.Path, prev, r.Name)
		}
		paths[key] = r.Name

		if len(p.segments) == 0 {
			home = true
		}

		t.byName[r.Name] = len(t.entries)
		t.entries = append(t.entries, entry{route: r, pattern: p})
	}

	if !home {
		return nil, ErrMissingHome
	}

	return t, nil
}

// MustNew is like New but panics if the routes do not form a valid table.
// It is intended for tables declared in code.
func MustNew(routes ...Route) *Table {
	t, err := New(routes...)
	if err != nil {
		panic(fmt.Sprintf("navigation: %v", err))
	}
	return t
}

// Resolve finds the first route whose pattern accepts path. A query string
// on path is carried on the match; a fragment is dropped. When no route
// accepts the path the error is an *UnresolvedError.
func (t *Table) Resolve(path string) (*Match, error) {
	target, query := splitTarget(path)
	if target[0] != '/' {
		return nil, &UnresolvedError{Path: target}
	}

	parts := splitPath(target)
	for _, e := range t.entries {
		if params, ok := e.pattern.match(parts); ok {
			return &Match{
				Route:  e.route,
				Path:   target,
				Params: params,
				Query:  query,
			}, nil
		}
	}

	return nil, &UnresolvedError{Path: target}
}

// Navigate resolves a navigation request. Requests by name go straight to
// the named route and must supply a value for every parameter segment.
// Requests by path are resolved with Resolve; params supplied alongside a
// path are ignored.
func (t *Table) Navigate(loc Location) (*Match, error) {
	if loc.Name == "" {
		m, err := t.Resolve(loc.Path)
		if err != nil {
			return nil, err
		}
		m.Query = mergeQuery(m.Query, loc.Query)
		return m, nil
	}

	i, ok := t.byName[loc.Name]
	if !ok {
		return nil, &UnresolvedError{Name: loc.Name}
	}
	e := t.entries[i]

	path, err := e.pattern.build(loc.Params)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", loc.Name, err)
	}

	params := make(Params, len(e.pattern.params))
	for _, name := range e.pattern.params {
		params[name] = loc.Params[name]
	}

	return &Match{
		Route:  e.route,
		Path:   path,
		Params: params,
		Query:  mergeQuery(nil, loc.Query),
	}, nil
}

// Href builds the concrete path for the named route.
func (t *Table) Href(name string, params Params) (string, error) {
	m, err := t.Navigate(Location{Name: name, Params: params})
	if err != nil {
		return "", err
	}
	return m.Path, nil
}

// Lookup returns the route registered under name.
func (t *Table) Lookup(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.entries[i].route, true
}

// Routes returns the table's routes in declaration order.
func (t *Table) Routes() []Route {
	routes := make([]Route, len(t.entries))
	for i, e := range t.entries {
		routes[i] = e.route
	}
	return routes
}

// Names returns the route names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		names = append(names, e.route.Name)
	}
	return names
}

// Len returns the number of routes in the table.
func (t *Table) Len() int {
	return len(t.entries)
}
