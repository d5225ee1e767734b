// Package main provides shelf, a single-user library catalog.
package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/calvinalkan/shelf/internal/cli"
)

func main() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, environ(), sigCh))
}

// environ returns the process environment keyed by variable name.
func environ() map[string]string {
	env := map[string]string{}

	for _, kv := range os.Environ() {
		if key, value, found := strings.Cut(kv, "="); found {
			env[key] = value
		}
	}

	return env
}
