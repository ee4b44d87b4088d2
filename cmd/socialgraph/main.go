package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/socialgraph/internal/cli"
)

// exitInterrupted follows the shell convention of 128 + SIGINT.
const exitInterrupted = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		os.Exit(exitInterrupted)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
