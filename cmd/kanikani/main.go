// cmd/kanikani/main.go
//
// This is the entry point for the kanikani CLI.
// Running `kanikani` with no arguments opens the main menu; the review,
// lessons, summary, and login subcommands jump straight to one task.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
