package navigation

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// paramPrefix marks a parameter segment in a path pattern, as in
// "/campain/:campain".
const paramPrefix = ":"

type segment struct {
	value   string
	isParam bool
}

// pattern is a compiled route path. The root path "/" compiles to zero
// segments.
type pattern struct {
	raw      string
	segments []segment
	params   []string
}

func parsePattern(raw string) (pattern, error) {
	if !strings.HasPrefix(raw, "/") {
		return pattern{}, fmt.Errorf("%w: path %q must start with /", ErrInvalidRoute, raw)
	}

	p := pattern{raw: raw}
	for _, part := range splitPath(raw) {
		if part == "" {
			return pattern{}, fmt.Errorf("%w: path %q has an empty segment", ErrInvalidRoute, raw)
		}

		if !strings.HasPrefix(part, paramPrefix) {
			p.segments = append(p.segments, segment{value: part})
			continue
		}

		name := strings.TrimPrefix(part, paramPrefix)
		if name == "" {
			return pattern{}, fmt.Errorf("%w: path %q has an unnamed parameter", ErrInvalidRoute, raw)
		}
		if slices.Contains(p.params, name) {
			return pattern{}, fmt.Errorf("%w: path %q repeats parameter %q", ErrInvalidRoute, raw, name)
		}

		p.params = append(p.params, name)
		p.segments = append(p.segments, segment{value: name, isParam: true})
	}

	return p, nil
}

// key is the canonical form used to detect duplicate paths. A trailing
// slash does not make a path distinct.
func (p pattern) key() string {
	if len(p.segments) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.isParam {
			b.WriteString(paramPrefix)
		}
		b.WriteString(seg.value)
	}
	return b.String()
}

// match reports whether the split request path satisfies the pattern and
// returns the bound parameter values. Values are not validated beyond
// being non-empty.
func (p pattern) match(parts []string) (Params, bool) {
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := make(Params, len(p.params))
	for i, seg := range p.segments {
		if !seg.isParam {
			if parts[i] != seg.value {
				return nil, false
			}
			continue
		}

		if parts[i] == "" {
			return nil, false
		}
		value, err := url.PathUnescape(parts[i])
		if err != nil {
			value = parts[i]
		}
		params[seg.value] = value
	}

	return params, true
}

// build renders a concrete path for the pattern from params.
func (p pattern) build(params Params) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}

	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if !seg.isParam {
			b.WriteString(seg.value)
			continue
		}

		value := params[seg.value]
		if value == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParam, seg.value)
		}
		b.WriteString(url.PathEscape(value))
	}
	return b.String(), nil
}

// splitPath splits a path into segments after dropping one leading and one
// trailing slash. The root path yields no segments.
func splitPath(path string) []string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
