package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellhouse/stockroom/internal/cli"
	"github.com/wellhouse/stockroom/pkg/logging"
)

func main() {
	logging.Setup()

	// Long-lived invocations (watch-style usage, debugging) can expose
	// the migration and write counters over HTTP.
	if addr := os.Getenv("STOCKROOM_METRICS_ADDR"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(subcommands.CommandsCommand(), "")
	cli.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
