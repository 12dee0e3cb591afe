// Command decoratable generates forwarding decorators for annotated Go
// interfaces and Swift protocols.
//
// Usage:
//
//	decoratable generate ./...
//	decoratable expand internal/store/store.go
//	decoratable clean ./...
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	cmd := NewRootCommand(os.Stdout, os.Stderr)
	cmd.SetContext(ctx)
	code := Execute(cmd, os.Stderr)
	stop()
	os.Exit(code)
}
