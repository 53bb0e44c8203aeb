// Package web provides infrastructure for rendering views with Go templates.
// Templates are parsed once at startup and cloned per view, so rendering
// does no parsing and template errors surface before the first request.
package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"
)

// ViewDef defines a view with its display name, template file and title.
type ViewDef struct {
	Name     string
	Template string
	Title    string
}

// ViewData contains the data passed to view templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Route    string
	Path     string
	Params   map[string]string
	Query    url.Values
}

// TemplateSet holds pre-parsed templates and a base path for URL generation.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet creates a TemplateSet by parsing layout templates and
// cloning them for each view. The basePath is stored and included in the
// ViewData of every render.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	funcs := template.FuncMap{
		"href": func(path string) string { return JoinPath(basePath, path) },
	}

	layouts, err := template.New("").Funcs(funcs).ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	viewTemplates := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		_, err = t.ParseFS(viewSub, v.Template)
		if err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		viewTemplates[v.Template] = t
	}

	return &TemplateSet{
		views:    viewTemplates,
		basePath: basePath,
	}, nil
}

// BasePath returns the base path the set was built with.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Render executes the named layout template with the given view data.
func (ts *TemplateSet) Render(w io.Writer, layoutName, viewPath string, data ViewData) error {
	t, ok := ts.views[viewPath]
	if !ok {
		return fmt.Errorf("template not found: %s", viewPath)
	}
	data.BasePath = ts.basePath
	return t.ExecuteTemplate(w, layoutName, data)
}

// JoinPath prefixes path with basePath without doubling slashes. The
// root path maps to the base path itself.
func JoinPath(basePath, path string) string {
	base := strings.TrimRight(basePath, "/")
	if path == "" || path == "/" {
		if base == "" {
			return "/"
		}
		return base
	}
	if path[0] != '/' {
		path = "/" + path
	}
	return base + path
}
