// Command navigate drives the route table of one application variant from
// the terminal: it lists the table, resolves single targets, and runs an
// interactive shell reading one navigation per line.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
