// Package views provides the application's views with embedded templates.
package views

import (
	"embed"
	"io"

	"github.com/JaimeStill/unidelivery/internal/tables"
	"github.com/JaimeStill/unidelivery/pkg/navigation"
	"github.com/JaimeStill/unidelivery/pkg/web"
)

//go:embed templates/layouts/*
var layoutFS embed.FS

//go:embed templates/views/*
var viewFS embed.FS

const layout = "app.html"

// View names.
const (
	Home            = "Home"
	Contacts        = "Contacts"
	PageOne         = "PageOne"
	PageTwo         = "PageTwo"
	CuteCat         = "CuteCat"
	HomeOperator    = "HomeOperator"
	MyUsersOperator = "MyUsersOperator"
	NotFound        = "NotFound"
)

var defs = []web.ViewDef{
	{Name: Home, Template: "home.html", Title: "Home"},
	{Name: Contacts, Template: "contacts.html", Title: "Contacts"},
	{Name: PageOne, Template: "page_one.html", Title: "Page One"},
	{Name: PageTwo, Template: "page_two.html", Title: "Page Two"},
	{Name: CuteCat, Template: "cute_cat.html", Title: "Cute Cat"},
	{Name: HomeOperator, Template: "home_operator.html", Title: "Operator"},
	{Name: MyUsersOperator, Template: "my_users_operator.html", Title: "Campaign Users"},
	{Name: NotFound, Template: "404.html", Title: "Not Found"},
}

// Set holds every view, built from one pre-parsed template set.
type Set struct {
	views    map[string]*view
	basePath string
}

// New parses the embedded templates and builds the view set. Links in
// rendered views are prefixed with basePath.
func New(basePath string) (*Set, error) {
	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"templates/layouts/*.html",
		"templates/views",
		basePath,
		defs,
	)
	if err != nil {
		return nil, err
	}

	s := &Set{
		views:    make(map[string]*view, len(defs)),
		basePath: ts.BasePath(),
	}
	for _, def := range defs {
		s.views[def.Name] = &view{def: def, templates: ts}
	}
	return s, nil
}

// Views returns the views referenced by the route tables.
func (s *Set) Views() tables.Views {
	return tables.Views{
		Home:            s.views[Home],
		Contacts:        s.views[Contacts],
		PageOne:         s.views[PageOne],
		PageTwo:         s.views[PageTwo],
		CuteCat:         s.views[CuteCat],
		HomeOperator:    s.views[HomeOperator],
		MyUsersOperator: s.views[MyUsersOperator],
	}
}

// Href returns the link to an application path below the base path.
func (s *Set) Href(path string) string {
	return web.JoinPath(s.basePath, path)
}

// NotFound returns the view shown when a navigation is unresolved.
func (s *Set) NotFound() navigation.View {
	return s.views[NotFound]
}

type view struct {
	def       web.ViewDef
	templates *web.TemplateSet
}

func (v *view) ViewName() string {
	return v.def.Name
}

// Render writes the view inside the application layout. A nil match
// renders the view without route data.
func (v *view) Render(w io.Writer, m *navigation.Match) error {
	data := web.ViewData{Title: v.def.Title}
	if m != nil {
		data.Route = m.Route.Name
		data.Path = m.Path
		data.Params = m.Params
		data.Query = m.Query
	}
	return v.templates.Render(w, layout, v.def.Template, data)
}
