package app_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/unidelivery/internal/metrics"
	"github.com/JaimeStill/unidelivery/internal/shell"
	"github.com/JaimeStill/unidelivery/internal/tables"
	"github.com/JaimeStill/unidelivery/pkg/handlers"
	"github.com/JaimeStill/unidelivery/pkg/module"
	"github.com/JaimeStill/unidelivery/pkg/navigation"
	"github.com/JaimeStill/unidelivery/web/app"
	"github.com/JaimeStill/unidelivery/web/views"
)

const basePath = "/app"

func newRouter(t *testing.T, role tables.Role, policy shell.Policy) (*module.Router, *metrics.Metrics) {
	t.Helper()

	set, err := views.New(basePath)
	require.NoError(t, err)

	table, err := tables.New(role, set.Views())
	require.NoError(t, err)

	m := metrics.New()
	router := module.NewRouter()
	router.Mount(app.NewModule(app.Config{
		BasePath: basePath,
		Role:     role,
		Fallback: policy,
		Table:    table,
		Views:    set,
		Metrics:  m,
	}))
	return router, m
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestPage_RendersMatchedView(t *testing.T) {
	tests := []struct {
		name   string
		role   tables.Role
		target string
		route  string
		want   string
	}{
		{"user home", tables.RoleUser, "/app", "home", "Welcome to uniDelivery."},
		{"user contacts", tables.RoleUser, "/app/contacts", "contacts", "Reach the delivery office"},
		{"user page one", tables.RoleUser, "/app/page_one", "page_one", "<h1>Page One</h1>"},
		{"demo cat", tables.RoleDemo, "/app/cutecate", "cutecat", "=^..^="},
		{"operator home", tables.RoleOperator, "/app", "home", "Select a campaign"},
		{"operator campaign", tables.RoleOperator, "/app/campain/7", "users", `<span class="campain">7</span>`},
		{"operator page two", tables.RoleOperator, "/app/page_two?tab=x", "page_two", "<h1>Page Two</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t, tt.role, shell.PolicyNotFound)

			rec := get(router, tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), `data-route="`+tt.route+`"`)
		})
	}
}

func TestPage_TrailingSlashRedirects(t *testing.T) {
	router, _ := newRouter(t, tables.RoleUser, shell.PolicyNotFound)

	rec := get(router, "/app/contacts/")

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/app/contacts", rec.Header().Get("Location"))
}

func TestPage_Unresolved(t *testing.T) {
	tests := []struct {
		name   string
		role   tables.Role
		target string
	}{
		{"nonexistent", tables.RoleUser, "/app/nonexistent"},
		{"cat outside demo", tables.RoleUser, "/app/cutecate"},
		{"correct spelling", tables.RoleDemo, "/app/cutecat"},
		{"users outside operator", tables.RoleUser, "/app/campain/7"},
		{"campaign without id", tables.RoleOperator, "/app/campain"},
		{"nested campaign", tables.RoleOperator, "/app/campain/7/extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t, tt.role, shell.PolicyNotFound)

			rec := get(router, tt.target)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), "No page matches")
			assert.Contains(t, rec.Body.String(), `href="/app"`)
		})
	}
}

func TestPage_FallbackPolicies(t *testing.T) {
	t.Run("keep", func(t *testing.T) {
		router, _ := newRouter(t, tables.RoleUser, shell.PolicyKeep)

		rec := get(router, "/app/nonexistent")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("blank", func(t *testing.T) {
		router, _ := newRouter(t, tables.RoleUser, shell.PolicyBlank)

		rec := get(router, "/app/nonexistent")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestListRoutes(t *testing.T) {
	router, _ := newRouter(t, tables.RoleOperator, shell.PolicyNotFound)

	rec := get(router, "/app/api/routes")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []app.RouteInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	want := []app.RouteInfo{
		{Name: "home", Path: "/", View: views.HomeOperator},
		{Name: "users", Path: "/campain/:campain", View: views.MyUsersOperator, Params: []string{"campain"}},
		{Name: "contacts", Path: "/contacts", View: views.Contacts},
		{Name: "page_one", Path: "/page_one", View: views.PageOne},
		{Name: "page_two", Path: "/page_two", View: views.PageTwo},
	}
	assert.Equal(t, want, got)
}

func TestResolve_ByPath(t *testing.T) {
	router, _ := newRouter(t, tables.RoleOperator, shell.PolicyNotFound)

	rec := get(router, "/app/api/resolve?path=/campain/42")
	require.Equal(t, http.StatusOK, rec.Code)

	var got app.MatchInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, "users", got.Name)
	assert.Equal(t, "/campain/42", got.Path)
	assert.Equal(t, "/app/campain/42", got.Href)
	assert.Equal(t, views.MyUsersOperator, got.View)
	assert.Equal(t, map[string]string{"campain": "42"}, got.Params)
}

func TestResolve_ByName(t *testing.T) {
	router, _ := newRouter(t, tables.RoleOperator, shell.PolicyNotFound)

	rec := get(router, "/app/api/resolve?name=users&param.campain=abc")
	require.Equal(t, http.StatusOK, rec.Code)

	var got app.MatchInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

	assert.Equal(t, "/campain/abc", got.Path)
	assert.Equal(t, "abc", got.Params["campain"])
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		error  string
	}{
		{"unresolved path", "path=/nonexistent", http.StatusNotFound, `no matching route: path "/nonexistent"`},
		{"unknown name", "name=cutecat", http.StatusNotFound, `no matching route: name "cutecat"`},
		{"missing param", "name=users", http.StatusBadRequest, "missing route parameter"},
		{"no target", "", http.StatusBadRequest, app.ErrMissingTarget.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t, tables.RoleOperator, shell.PolicyNotFound)

			rec := get(router, "/app/api/resolve?"+tt.query)
			require.Equal(t, tt.status, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Contains(t, body.Error, tt.error)
		})
	}
}

func TestPage_RecordsMetrics(t *testing.T) {
	router, m := newRouter(t, tables.RoleUser, shell.PolicyNotFound)

	get(router, "/app")
	get(router, "/app/contacts")
	get(router, "/app/nonexistent")

	count, err := testutil.GatherAndCount(m.Registry(), "unidelivery_navigation_resolved_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(m.Registry(), "unidelivery_navigation_unresolved_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPage_EscapedParamRoundTrip(t *testing.T) {
	set, err := views.New(basePath)
	require.NoError(t, err)
	table, err := tables.New(tables.RoleOperator, set.Views())
	require.NoError(t, err)

	tests := []struct {
		campain string
		escaped string
	}{
		{"a%41", `<span class="campain">a%41</span>`},
		{"100%", `<span class="campain">100%</span>`},
		{"a/b", `<span class="campain">a/b</span>`},
		{"two words", `<span class="campain">two words</span>`},
	}

	router, _ := newRouter(t, tables.RoleOperator, shell.PolicyNotFound)

	for _, tt := range tests {
		t.Run(tt.campain, func(t *testing.T) {
			path, err := table.Href("users", navigation.Params{"campain": tt.campain})
			require.NoError(t, err)

			rec := get(router, set.Href(path))
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.escaped)

			rec = get(router, "/app/api/resolve?path="+url.QueryEscape(path))
			require.Equal(t, http.StatusOK, rec.Code)

			var got app.MatchInfo
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.campain, got.Params["campain"])
		})
	}
}

func TestNewModule_LogsRoutes(t *testing.T) {
	set, err := views.New(basePath)
	require.NoError(t, err)
	table, err := tables.New(tables.RoleDemo, set.Views())
	require.NoError(t, err)

	var buf bytes.Buffer
	app.NewModule(app.Config{
		BasePath: basePath,
		Role:     tables.RoleDemo,
		Table:    table,
		Views:    set,
		Logger:   slog.New(slog.NewTextHandler(&buf, nil)),
	})

	out := buf.String()
	for _, want := range []string{
		"app module routes",
		"GET /api/routes",
		"GET /api/resolve",
		"Route table inspection and resolution",
		"cutecat",
	} {
		assert.Contains(t, out, want)
	}
}
