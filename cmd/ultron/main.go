package main

import (
	"context"
	"os"

	"github.com/yndnr/ultron-cli/internal/cli/command"
	"github.com/yndnr/ultron-cli/internal/cli/output"
	"github.com/yndnr/ultron-cli/internal/infra/shutdown"
)

func main() {
	ctx, stop := shutdown.WithSignals(context.Background())
	err := command.App().RunContext(ctx, os.Args)
	stop()

	if err != nil {
		output.NewPrinter(os.Stderr, os.Stderr, false).Errorf("error: %v", err)
		os.Exit(1)
	}
}
