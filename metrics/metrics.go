// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes the engine's Prometheus instrumentation.
// Collection never blocks or alters processing: every record is counted
// exactly once regardless of whether a scrape endpoint is ever started.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors bundles the engine's run-time counters and histogram. The
// zero value is not usable; construct with New.
type Collectors struct {
	RecordsRead       prometheus.Counter
	RecordsSkipped    *prometheus.CounterVec
	RecordsRouted     *prometheus.CounterVec
	DomainErrors      *prometheus.CounterVec
	DuplicatesIgnored prometheus.Counter
	ProcessDuration   prometheus.Histogram
}

// New registers and returns a fresh set of collectors against registry.
func New(registry prometheus.Registerer) *Collectors {
	c := &Collectors{
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paymentsengine",
			Name:      "records_read_total",
			Help:      "Total input rows read from the CSV source.",
		}),
		RecordsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paymentsengine",
			Name:      "records_skipped_total",
			Help:      "Input rows skipped before reaching the orchestrator, by reason.",
		}, []string{"reason"}),
		RecordsRouted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paymentsengine",
			Name:      "records_routed_total",
			Help:      "Records dispatched to a worker queue, by worker index.",
		}, []string{"worker"}),
		DomainErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paymentsengine",
			Name:      "domain_errors_total",
			Help:      "Non-fatal domain command rejections, by kind.",
		}, []string{"kind"}),
		DuplicatesIgnored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "paymentsengine",
			Name:      "duplicate_transactions_ignored_total",
			Help:      "Transaction ids rejected by the dedup gate as duplicates.",
		}),
		ProcessDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "paymentsengine",
			Name:      "record_process_duration_seconds",
			Help:      "Time spent processing one input record through the orchestrator.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}
	registry.MustRegister(
		c.RecordsRead,
		c.RecordsSkipped,
		c.RecordsRouted,
		c.DomainErrors,
		c.DuplicatesIgnored,
		c.ProcessDuration,
	)
	return c
}
