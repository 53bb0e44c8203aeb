// Package routes declares HTTP route groups and registers them on a chi
// router.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

// Register adds every route of the groups, and of their children, to r.
func Register(r chi.Router, groups ...Group) {
	for _, g := range groups {
		register(r, "", g)
	}
}

func register(r chi.Router, parentPrefix string, g Group) {
	prefix := parentPrefix + g.Prefix
	for _, route := range g.Routes {
		r.MethodFunc(route.Method, prefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		register(r, prefix, child)
	}
}

// Patterns lists the method and full pattern of every route in the groups,
// in registration order.
func Patterns(groups ...Group) []string {
	var out []string
	var walk func(prefix string, g Group)
	walk = func(prefix string, g Group) {
		full := prefix + g.Prefix
		for _, route := range g.Routes {
			out = append(out, route.Method+" "+full+route.Pattern)
		}
		for _, child := range g.Children {
			walk(full, child)
		}
	}
	for _, g := range groups {
		walk("", g)
	}
	return out
}
