package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JaimeStill/unidelivery/internal/shell"
	"github.com/JaimeStill/unidelivery/pkg/navigation"
	"github.com/JaimeStill/unidelivery/web/views"
)

const prompt = "> "

// repl reads navigation targets line by line and reports what the shell
// displays after each one.
type repl struct {
	shell  *shell.Shell
	views  *views.Set
	out    io.Writer
	render bool
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	if _, err := r.shell.Navigate(ctx, navigation.Location{Path: "/"}); err != nil {
		return err
	}
	r.display()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "back":
			if _, ok := r.shell.Back(); !ok {
				fmt.Fprintln(r.out, "no history")
				continue
			}
			r.display()
			continue
		case "routes":
			if err := printRoutes(r.out, formatText, r.shell.Table()); err != nil {
				return err
			}
			continue
		}

		if err := r.navigate(ctx, line); err != nil {
			return err
		}
	}
}

// navigate reports recoverable navigation errors and returns the rest.
func (r *repl) navigate(ctx context.Context, line string) error {
	_, err := r.shell.Navigate(ctx, parseTarget(line))
	if err == nil {
		r.display()
		return nil
	}

	var unresolved *navigation.UnresolvedError
	switch {
	case errors.As(err, &unresolved):
		fmt.Fprintln(r.out, "error:", err)
		r.display()
		return nil
	case errors.Is(err, navigation.ErrMissingParam):
		fmt.Fprintln(r.out, "error:", err)
		return nil
	default:
		return err
	}
}

// display prints what the shell currently shows.
func (r *repl) display() {
	m := r.shell.Current()
	if m == nil {
		if r.shell.Unresolved() != nil && r.shell.Policy() == shell.PolicyNotFound {
			fmt.Fprintf(r.out, "showing %s\n", views.NotFound)
		} else {
			fmt.Fprintln(r.out, "showing nothing")
		}
	} else {
		fmt.Fprintf(r.out, "showing %s at %s (%s)\n",
			m.Route.Name, r.views.Href(m.FullPath()), navigation.ViewName(m.Route.View))
	}

	if r.render {
		if err := r.shell.Render(r.out); err != nil {
			fmt.Fprintln(r.out, "render error:", err)
		}
		fmt.Fprintln(r.out)
	}
}
