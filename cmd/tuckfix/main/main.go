package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/tuckfix/cmd/tuckfix"
	"github.com/arthur-debert/tuckfix/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := tuckfix.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}

	var exitErr *tuckfix.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
	os.Exit(tuckfix.ExitFailure)
}
