package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/contre95/presetcli/src/features/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
