package web_test

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/JaimeStill/unidelivery/pkg/web"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": {Data: []byte(
			`<title>{{ .Title }}</title><a href="{{ href "/" }}">home</a>{{ block "content" . }}{{ end }}`,
		)},
		"views/home.html": {Data: []byte(
			`{{ define "content" }}<p>{{ .Route }} at {{ .Path }} via {{ .BasePath }}</p>{{ end }}`,
		)},
		"views/item.html": {Data: []byte(
			`{{ define "content" }}<p>item {{ index .Params "id" }} <a href="{{ href "/items" }}">all</a></p>{{ end }}`,
		)},
	}
}

var testViews = []web.ViewDef{
	{Name: "Home", Template: "home.html", Title: "Home"},
	{Name: "Item", Template: "item.html", Title: "Item"},
}

func TestTemplateSet_Render(t *testing.T) {
	fsys := testFS()
	ts, err := web.NewTemplateSet(fsys, fsys, "layouts/*.html", "views", "/app", testViews)
	if err != nil {
		t.Fatalf("NewTemplateSet() failed: %v", err)
	}

	if ts.BasePath() != "/app" {
		t.Errorf("BasePath() = %q, want %q", ts.BasePath(), "/app")
	}

	tests := []struct {
		name string
		view string
		data web.ViewData
		want []string
	}{
		{
			name: "home",
			view: "home.html",
			data: web.ViewData{Title: "Home", Route: "home", Path: "/"},
			want: []string{"<title>Home</title>", `href="/app"`, "<p>home at / via /app</p>"},
		},
		{
			name: "params",
			view: "item.html",
			data: web.ViewData{Title: "Item", Params: map[string]string{"id": "7"}},
			want: []string{"item 7", `href="/app/items"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := ts.Render(&buf, "base.html", tt.view, tt.data); err != nil {
				t.Fatalf("Render() failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q missing %q", buf.String(), want)
				}
			}
		})
	}
}

func TestTemplateSet_ViewsAreIsolated(t *testing.T) {
	fsys := testFS()
	ts, err := web.NewTemplateSet(fsys, fsys, "layouts/*.html", "views", "", testViews)
	if err != nil {
		t.Fatalf("NewTemplateSet() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ts.Render(&buf, "base.html", "home.html", web.ViewData{Route: "home"}); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if strings.Contains(buf.String(), "item") {
		t.Errorf("home view rendered item content: %q", buf.String())
	}
}

func TestTemplateSet_Errors(t *testing.T) {
	fsys := testFS()

	if _, err := web.NewTemplateSet(fsys, fsys, "layouts/*.html", "views", "", []web.ViewDef{
		{Name: "Missing", Template: "missing.html"},
	}); err == nil {
		t.Error("NewTemplateSet() with missing template succeeded")
	}

	ts, err := web.NewTemplateSet(fsys, fsys, "layouts/*.html", "views", "", testViews)
	if err != nil {
		t.Fatalf("NewTemplateSet() failed: %v", err)
	}
	if err := ts.Render(&bytes.Buffer{}, "base.html", "other.html", web.ViewData{}); err == nil {
		t.Error("Render() of unknown view succeeded")
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"", "/", "/"},
		{"", "/contacts", "/contacts"},
		{"/", "/", "/"},
		{"/", "/contacts", "/contacts"},
		{"/app", "/", "/app"},
		{"/app", "", "/app"},
		{"/app/", "/campain/42", "/app/campain/42"},
		{"/app", "page_one", "/app/page_one"},
	}

	for _, tt := range tests {
		t.Run(tt.base+"|"+tt.path, func(t *testing.T) {
			if got := web.JoinPath(tt.base, tt.path); got != tt.want {
				t.Errorf("JoinPath(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
			}
		})
	}
}
