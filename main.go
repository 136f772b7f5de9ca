package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bjulian5/releasebot/cmd"
)

func main() {
	// Actions cancels a job with SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.Execute(ctx)
}
