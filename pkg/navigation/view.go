package navigation

import (
	"fmt"
	"io"
)

// View is a renderable unit a route dispatches to. Tables only hold a
// reference to it; the application shell owns its lifetime.
type View interface {
	Render(w io.Writer, m *Match) error
}

// ViewFunc adapts an ordinary function to the View interface.
type ViewFunc func(w io.Writer, m *Match) error

// Render calls f(w, m).
func (f ViewFunc) Render(w io.Writer, m *Match) error {
	return f(w, m)
}

// Named is implemented by views that carry a display name.
type Named interface {
	ViewName() string
}

// ViewName returns the display name of v, falling back to its Go type.
func ViewName(v View) string {
	if v == nil {
		return ""
	}
	if n, ok := v.(Named); ok {
		return n.ViewName()
	}
	return fmt.Sprintf("%T", v)
}
