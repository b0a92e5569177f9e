// Command dvf-ingest downloads one year of French DVF real-estate
// transactions from data.gouv.fr and writes it as a Parquet file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/dvf-ingest/internal/adapters/driving/cli"
)

// version is overridden with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Stderr))
}

func run(stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetFactory(buildServices)

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
