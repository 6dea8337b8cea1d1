// Command analyze reports the OFLC prevailing-wage areas where a given hourly
// wage meets the selected wage level for one SOC occupation code.
//
// Usage:
//
//	go run ./cmd/analyze -config config.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/loc-eligibility/internal/config"
	"github.com/couchcryptid/loc-eligibility/internal/observability"
	"github.com/couchcryptid/loc-eligibility/internal/output"
	"github.com/couchcryptid/loc-eligibility/internal/pipeline"
	"github.com/couchcryptid/loc-eligibility/internal/report"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "config.yaml", "path to the YAML configuration file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	rep := report.New(stdout)

	cfg, err := config.Load(*configPath)
	if err != nil {
		rep.Error("%v", err)
		return 1
	}
	rep.Success("Configuration loaded from %s", *configPath)
	rep.Success("Configuration validated")
	for _, line := range cfg.Summary() {
		rep.Detail("- %s", line)
	}

	logger := observability.NewLogger(cfg.Logging, stderr)
	metrics := observability.NewMetrics()

	p := pipeline.New(cfg, output.NewWriter(cfg, logger), rep, logger, metrics)
	_, err = p.Run(ctx)

	if cfg.Metrics.Textfile != "" {
		if werr := metrics.WriteTextfile(cfg.Resolve(cfg.Metrics.Textfile)); werr != nil {
			logger.Error("write metrics textfile", "path", cfg.Metrics.Textfile, "error", werr)
		}
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		rep.Plain("")
		rep.Warn("Analysis interrupted by user")
		return 1
	default:
		logger.Error("analysis failed", "error", err)
		rep.Error("%v", err)
		return 1
	}
}
