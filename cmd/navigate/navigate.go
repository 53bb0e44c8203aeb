package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/unidelivery/internal/config"
	"github.com/JaimeStill/unidelivery/internal/shell"
	"github.com/JaimeStill/unidelivery/internal/tables"
	"github.com/JaimeStill/unidelivery/pkg/logging"
	"github.com/JaimeStill/unidelivery/pkg/navigation"
	"github.com/JaimeStill/unidelivery/web/app"
	"github.com/JaimeStill/unidelivery/web/views"
)

// Output formats for -routes and -resolve.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type options struct {
	role     string
	fallback string
	basePath string
	format   string
	logLevel string
	routes   bool
	resolve  string
	render   bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := execute(opts, stdin, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, "navigate:", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	defaultRole := os.Getenv(config.EnvAppRole)
	if defaultRole == "" {
		defaultRole = string(tables.RoleUser)
	}

	opts := &options{}
	fs := flag.NewFlagSet("navigate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.role, "role", defaultRole, "Application variant: user, demo, or operator")
	fs.StringVar(&opts.fallback, "fallback", string(shell.PolicyKeep), "Unresolved navigation policy: keep, not_found, or blank")
	fs.StringVar(&opts.basePath, "base", "/", "Base path prefixed to rendered links")
	fs.StringVar(&opts.format, "format", formatText, "Output format for -routes and -resolve: text, json, or yaml")
	fs.StringVar(&opts.logLevel, "log-level", string(logging.LevelWarn), "Log level written to stderr")
	fs.BoolVar(&opts.routes, "routes", false, "Print the route table and exit")
	fs.StringVar(&opts.resolve, "resolve", "", "Resolve a path, or a route name with key=value params, and exit")
	fs.BoolVar(&opts.render, "render", false, "Print the rendered view after each navigation")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: navigate [-role user|demo|operator] [-routes|-resolve <target>] [-format text|json|yaml]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch opts.format {
	case formatText, formatJSON, formatYAML:
	default:
		err := fmt.Errorf("invalid format: %s (must be text, json, or yaml)", opts.format)
		fmt.Fprintln(stderr, err)
		return nil, err
	}
	return opts, nil
}

func execute(opts *options, stdin io.Reader, stdout, stderr io.Writer) error {
	role := tables.Role(opts.role)
	policy := shell.Policy(opts.fallback)
	if err := policy.Validate(); err != nil {
		return err
	}

	logCfg := &logging.Config{Level: logging.Level(opts.logLevel)}
	if err := logCfg.Finalize(nil); err != nil {
		return err
	}
	logger := logging.NewWriter(logCfg, stderr)

	set, err := views.New(opts.basePath)
	if err != nil {
		return err
	}
	table, err := tables.New(role, set.Views())
	if err != nil {
		return err
	}

	switch {
	case opts.routes:
		return printRoutes(stdout, opts.format, table)
	case opts.resolve != "":
		m, err := table.Navigate(parseTarget(opts.resolve))
		if err != nil {
			return err
		}
		return printMatch(stdout, opts.format, app.NewMatchInfo(m, set.Href(m.FullPath())))
	}

	sh := shell.New(table,
		shell.WithLogger(logger),
		shell.WithRole(string(role)),
		shell.WithFallback(policy, set.NotFound()),
	)
	r := &repl{
		shell:  sh,
		views:  set,
		out:    stdout,
		render: opts.render,
	}
	return r.run(context.Background(), stdin)
}

// parseTarget reads a navigation target: a path starting with "/", or a
// route name followed by key=value params.
func parseTarget(line string) navigation.Location {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return navigation.Location{Path: "/"}
	}
	if strings.HasPrefix(fields[0], "/") {
		return navigation.Location{Path: fields[0]}
	}

	loc := navigation.Location{Name: fields[0]}
	for _, f := range fields[1:] {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			continue
		}
		if loc.Params == nil {
			loc.Params = navigation.Params{}
		}
		loc.Params[key] = value
	}
	return loc
}

func printRoutes(w io.Writer, format string, table *navigation.Table) error {
	routes := table.Routes()
	infos := make([]app.RouteInfo, 0, len(routes))
	for _, r := range routes {
		infos = append(infos, app.NewRouteInfo(r))
	}

	switch format {
	case formatJSON:
		return encodeJSON(w, infos)
	case formatYAML:
		return encodeYAML(w, infos)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPATH\tVIEW")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Path, info.View)
	}
	return tw.Flush()
}

func printMatch(w io.Writer, format string, info app.MatchInfo) error {
	switch format {
	case formatJSON:
		return encodeJSON(w, info)
	case formatYAML:
		return encodeYAML(w, info)
	}
	_, err := fmt.Fprintf(w, "%s %s (%s)\n", info.Name, info.Href, info.View)
	return err
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
