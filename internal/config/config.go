// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds the engine's runtime Config from command-line
// flags: pflag defines the surface, viper binds it, and a typed struct
// is the only thing the rest of the program sees.
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	WorkersKey     = "workers"
	QueueSizeKey   = "queue-size"
	LogLevelKey    = "log-level"
	MetricsAddrKey = "metrics-addr"
)

// Config is the fully-resolved, typed configuration consumed by
// cmd/paymentsengine. InputPath is the single positional argument;
// everything else has a usable default.
type Config struct {
	InputPath   string
	Workers     int
	QueueSize   int
	LogLevel    string
	MetricsAddr string
}

// BuildFlagSet declares the engine's flag surface. It does not parse
// os.Args; callers pass that in separately so tests can build flag sets
// against arbitrary argv.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("paymentsengine", pflag.ContinueOnError)
	fs.Int(WorkersKey, runtime.GOMAXPROCS(0), "number of worker goroutines")
	fs.Int(QueueSizeKey, 100, "bounded per-worker queue capacity")
	fs.String(LogLevelKey, "info", "log level: debug, info, warn, error")
	fs.String(MetricsAddrKey, "", "address to serve Prometheus metrics on (empty disables the endpoint)")
	return fs
}

// BuildViper parses args against fs and binds every flag into a fresh
// viper instance. Returns pflag.ErrHelp unmodified when -h/--help was
// requested, matching pflag's own convention so callers can special-case
// a clean exit.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: binding flags: %w", err)
	}
	v.SetEnvPrefix("PAYMENTSENGINE")
	v.AutomaticEnv()
	return v, nil
}

// BuildConfig resolves a typed Config from v and the positional
// arguments remaining after flag parsing. Exactly one positional
// argument, the input file path, is required.
func BuildConfig(v *viper.Viper, positional []string) (Config, error) {
	if len(positional) != 1 {
		return Config{}, fmt.Errorf("config: expected exactly one input file path argument, got %d", len(positional))
	}
	cfg := Config{
		InputPath:   positional[0],
		Workers:     v.GetInt(WorkersKey),
		QueueSize:   v.GetInt(QueueSizeKey),
		LogLevel:    v.GetString(LogLevelKey),
		MetricsAddr: v.GetString(MetricsAddrKey),
	}
	if cfg.Workers <= 0 {
		return Config{}, fmt.Errorf("config: %s must be positive, got %d", WorkersKey, cfg.Workers)
	}
	if cfg.QueueSize <= 0 {
		return Config{}, fmt.Errorf("config: %s must be positive, got %d", QueueSizeKey, cfg.QueueSize)
	}
	return cfg, nil
}
