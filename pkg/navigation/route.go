package navigation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Route maps a path pattern to a named view. Path segments starting with
// ":" are parameter segments whose runtime value is bound under the
// segment's name.
type Route struct {
	Path string `validate:"required,startswith=/"`
	Name string `validate:"required"`
	View View   `validate:"required"`
}

// ParamNames returns the names of the parameter segments in the route's
// path, in path order.
func (r Route) ParamNames() []string {
	var names []string
	for _, part := range splitPath(r.Path) {
		if name, ok := strings.CutPrefix(part, paramPrefix); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (r Route) validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: route %q: %v", ErrInvalidRoute, r.Name, err)
	}
	return nil
}
