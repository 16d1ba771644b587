package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/gitscripts/internal/adapter/driving/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Cancel in-flight requests on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.RunRepoList(ctx, os.Args[1:], cli.Dependencies{})
}
