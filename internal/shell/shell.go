// Package shell provides the application shell: it owns the current route,
// dispatches navigation requests to the injected route table and renders
// the view of the current route.
package shell

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/unidelivery/pkg/navigation"
)

// maxHistory bounds the number of previous routes kept for Back.
const maxHistory = 64

// Recorder receives navigation outcomes.
type Recorder interface {
	Resolved(role, route string)
	Unresolved(role string)
}

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the logger used for navigation events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRole labels log entries and metrics with the role of the table.
func WithRole(role string) Option {
	return func(s *Shell) {
		s.role = role
	}
}

// WithMetrics records navigation outcomes on r.
func WithMetrics(r Recorder) Option {
	return func(s *Shell) {
		s.recorder = r
	}
}

// WithFallback sets the policy applied when a navigation is unresolved.
// The notFound view is only rendered under PolicyNotFound; when it is nil
// that policy renders nothing.
func WithFallback(policy Policy, notFound navigation.View) Option {
	return func(s *Shell) {
		s.policy = policy.normalize()
		s.notFound = notFound
	}
}

// Shell dispatches navigation requests against a single route table and
// tracks the current route. It is safe for concurrent use.
type Shell struct {
	table    *navigation.Table
	role     string
	logger   *slog.Logger
	recorder Recorder
	policy   Policy
	notFound navigation.View

	mu         sync.Mutex
	current    *navigation.Match
	unresolved *navigation.UnresolvedError
	history    []*navigation.Match
}

// New creates a shell over table. Without options the shell keeps the
// previous view on unresolved navigations and discards log output.
func New(table *navigation.Table, opts ...Option) *Shell {
	s := &Shell{
		table:  table,
		logger: slog.New(slog.DiscardHandler),
		policy: PolicyKeep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the route table the shell dispatches to.
func (s *Shell) Table() *navigation.Table {
	return s.table
}

// Policy returns the fallback policy for unresolved navigations.
func (s *Shell) Policy() Policy {
	return s.policy
}

// Navigate resolves loc and makes the match the current route. When no
// route matches, the fallback policy decides what stays displayed and the
// *navigation.UnresolvedError is returned. Other errors leave the shell
// unchanged.
func (s *Shell) Navigate(ctx context.Context, loc navigation.Location) (*navigation.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	m, err := s.table.Navigate(loc)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		var unresolved *navigation.UnresolvedError
		if !errors.As(err, &unresolved) {
			s.logger.Warn("navigation rejected",
				"navigation_id", id,
				"role", s.role,
				"target", loc.String(),
				"error", err,
			)
			return nil, err
		}

		s.fallback(unresolved)
		if s.recorder != nil {
			s.recorder.Unresolved(s.role)
		}
		s.logger.Info("navigation unresolved",
			"navigation_id", id,
			"role", s.role,
			"target", loc.String(),
			"policy", string(s.policy),
		)
		return nil, err
	}

	if s.current != nil {
		s.push(s.current)
	}
	s.current = m
	s.unresolved = nil

	if s.recorder != nil {
		s.recorder.Resolved(s.role, m.Route.Name)
	}
	s.logger.Debug("navigation resolved",
		"navigation_id", id,
		"role", s.role,
		"route", m.Route.Name,
		"path", m.FullPath(),
		"view", navigation.ViewName(m.Route.View),
	)

	return m, nil
}

// Current returns the current route, or nil when nothing is displayed.
func (s *Shell) Current() *navigation.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Unresolved returns the last unresolved navigation when the fallback
// policy replaced the displayed view, or nil.
func (s *Shell) Unresolved() *navigation.UnresolvedError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unresolved
}

// Back restores the previous route. It reports false when there is no
// history.
func (s *Shell) Back() (*navigation.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return nil, false
	}

	last := len(s.history) - 1
	s.current = s.history[last]
	s.history[last] = nil
	s.history = s.history[:last]
	s.unresolved = nil

	return s.current, true
}

// Render writes the displayed view to w. It writes nothing when no view is
// displayed.
func (s *Shell) Render(w io.Writer) error {
	s.mu.Lock()
	current := s.current
	unresolved := s.unresolved
	s.mu.Unlock()

	switch {
	case current != nil:
		return current.Route.View.Render(w, current)
	case unresolved != nil && s.policy == PolicyNotFound && s.notFound != nil:
		return s.notFound.Render(w, &navigation.Match{Path: unresolved.Path})
	default:
		return nil
	}
}

func (s *Shell) fallback(err *navigation.UnresolvedError) {
	if s.policy == PolicyKeep {
		return
	}
	if s.current != nil {
		s.push(s.current)
	}
	s.current = nil
	s.unresolved = err
}

func (s *Shell) push(m *navigation.Match) {
	if len(s.history) == maxHistory {
		copy(s.history, s.history[1:])
		s.history = s.history[:maxHistory-1]
	}
	s.history = append(s.history, m)
}
