// Package module composes the HTTP surface from independently built
// modules, each mounted under its own single-level path prefix.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Module is an http.Handler served under a path prefix, with its own
// middleware chain.
type Module struct {
	prefix      string
	handler     http.Handler
	middlewares []func(http.Handler) http.Handler
}

// New creates a module serving handler under prefix. The prefix must be a
// single path segment with a leading slash, such as "/app"; New panics
// otherwise since prefixes are fixed at build time.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{prefix: prefix, handler: handler}
}

// Prefix returns the path prefix the module is mounted under.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware to the module's chain. Middleware added first
// runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middlewares = append(m.middlewares, mw)
}

// Handler returns the module handler wrapped in its middleware chain.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		h = m.middlewares[i](h)
	}
	return h
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix required")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if len(prefix) == 1 || strings.Contains(prefix[1:], "/") {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}
