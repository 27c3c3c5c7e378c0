// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// paymentsengine reads a CSV stream of transaction records and emits
// final per-client account balances as CSV on stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"github.com/urfave/cli/v2"

	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ingest"
	"github.com/ledgerflow/paymentsengine/internal/config"
	enginelog "github.com/ledgerflow/paymentsengine/log"
	"github.com/ledgerflow/paymentsengine/metrics"
	"github.com/ledgerflow/paymentsengine/output"
	"github.com/ledgerflow/paymentsengine/runner"
)

const clientIdentifier = "paymentsengine"

// app takes no cli.App-level flags of its own: the real flag surface is
// owned by internal/config's pflag.FlagSet (bound through viper).
// cli.App supplies only the usage text and the Before/Action lifecycle;
// SkipFlagParsing hands the whole argv through to that flag set unparsed.
var app = &cli.App{
	Name:            clientIdentifier,
	Usage:           "process a CSV ledger of transactions into final account balances",
	ArgsUsage:       "<input_file_path>",
	SkipFlagParsing: true,
}

func init() {
	app.Before = resolveConfig
	app.Action = run
}

var cfg config.Config

func main() {
	if err := app.Run(os.Args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resolveConfig(c *cli.Context) error {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, c.Args().Slice())
	if err != nil {
		return err
	}
	resolved, err := config.BuildConfig(v, fs.Args())
	if err != nil {
		return err
	}
	cfg = resolved

	if _, err := enginelog.LvlFromString(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", cfg.LogLevel, err)
	}
	enginelog.SetDefault(enginelog.NewLogger(enginelog.NewTerminalHandler(os.Stderr, false)))
	return nil
}

func run(c *cli.Context) error {
	ctx := context.Background()

	registry := prometheus.NewRegistry()
	collectors := metrics.New(registry)
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			enginelog.Root().Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				enginelog.Root().Warn("metrics server stopped", "err", err)
			}
		}()
	}

	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	reader, err := ingest.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	enginelog.Root().Info("starting run", "workers", cfg.Workers, "queueSize", cfg.QueueSize, "input", cfg.InputPath)

	views, err := runner.Run(ctx, reader, func() eventstore.Store { return eventstore.NewMemory() }, runner.Config{
		Workers:   cfg.Workers,
		QueueSize: cfg.QueueSize,
		Logger:    runnerLogger{},
		Metrics:   collectors,
	})
	if err != nil {
		return fmt.Errorf("processing run: %w", err)
	}

	if err := output.WriteCSV(os.Stdout, views); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// runnerLogger adapts this repo's log package to runner.Logger.
type runnerLogger struct{}

func (runnerLogger) Debugf(format string, args ...interface{}) {
	enginelog.Root().Debug(fmt.Sprintf(format, args...))
}
