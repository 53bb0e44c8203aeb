package navigation

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors reported while building or navigating a route table.
var (
	ErrUnresolvedRoute = errors.New("no matching route")
	ErrInvalidRoute    = errors.New("invalid route")
	ErrDuplicateName   = errors.New("duplicate route name")
	ErrDuplicatePath   = errors.New("duplicate route path")
	ErrMissingHome     = errors.New("route table requires a \"/\" route")
	ErrMissingParam    = errors.New("missing route parameter")
)

// UnresolvedError reports a navigation request that no route in the table
// accepts. Exactly one of Path or Name is set, depending on how the
// request addressed the table.
type UnresolvedError struct {
	Path string
	Name string
}

func (e *UnresolvedError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: name %q", ErrUnresolvedRoute, e.Name)
	}
	return fmt.Sprintf("%s: path %q", ErrUnresolvedRoute, e.Path)
}

func (e *UnresolvedError) Unwrap() error {
	return ErrUnresolvedRoute
}

// MapHTTPStatus maps navigation errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnresolvedRoute) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrMissingParam) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
