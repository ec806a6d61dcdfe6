package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gerunddev/larkbridge/internal/commands"
	"github.com/gerunddev/larkbridge/internal/styles"
)

const version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Root(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, styles.Failure("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}
