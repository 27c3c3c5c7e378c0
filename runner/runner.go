// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package runner implements the engine's partitioned execution model:
// one reader goroutine, N worker goroutines each owning one bounded
// queue and one isolated event store, coordinated with
// golang.org/x/sync/errgroup.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerflow/paymentsengine/domain/account"
	"github.com/ledgerflow/paymentsengine/domain/transaction"
	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/ingest"
	"github.com/ledgerflow/paymentsengine/metrics"
	"github.com/ledgerflow/paymentsengine/orchestrator"
	"github.com/ledgerflow/paymentsengine/partition"
)

// DefaultQueueSize is a bounded queue capacity that provides
// backpressure between the reader and the workers without being a
// correctness constraint: any positive size converges to the same
// final account state, only throughput changes.
const DefaultQueueSize = 100

// Logger is the minimal logging surface the runner needs. cmd/paymentsengine
// adapts this repo's log package to it, so this package and its tests do
// not depend on the log package.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// noopLogger discards everything; used when Config.Logger is nil.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}

// Config controls the runner's parallelism and diagnostics.
type Config struct {
	// Workers is the number of worker goroutines. Defaults to 1 if <= 0.
	Workers int
	// QueueSize is the bounded channel capacity per worker. Defaults to
	// DefaultQueueSize if <= 0.
	QueueSize int
	// Logger receives non-fatal diagnostics. Defaults to a no-op logger.
	Logger Logger
	// Metrics, if non-nil, is updated as records are read, routed, and
	// processed. Entirely optional: a nil Metrics never blocks or alters
	// processing.
	Metrics *metrics.Collectors
}

// Source is the lazy record stream the reader drains; ingest.Reader
// satisfies it.
type Source interface {
	Next() (ingest.Record, error)
}

// StoreFactory builds one fresh, worker-private event store per worker.
type StoreFactory func() eventstore.Store

// Run executes the full pipeline against src: a single reader dispatches
// records to N workers by partition.WorkerIndex(clientID, N); each
// worker drains its queue strictly in receive order through its own
// Orchestrator; once every worker has drained, Run folds each worker's
// account aggregates into views and returns the concatenated table.
// Routing every record for one client to the same worker is what lets
// the workers mutate their event stores without locking; row order
// across workers (not within a single client's own rows) is otherwise
// unspecified.
func Run(ctx context.Context, src Source, newStore StoreFactory, cfg Config) ([]account.View, error) {
	n := cfg.Workers
	if n <= 0 {
		n = 1
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	queues := make([]chan ingest.Record, n)
	stores := make([]eventstore.Store, n)
	for i := 0; i < n; i++ {
		queues[i] = make(chan ingest.Record, queueSize)
		stores[i] = newStore()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return read(gctx, src, queues, n, logger, cfg.Metrics)
	})

	clientsPerWorker := make([]map[ids.ClientID]struct{}, n)
	for i := 0; i < n; i++ {
		clientsPerWorker[i] = make(map[ids.ClientID]struct{})
	}

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return work(gctx, queues[i], stores[i], clientsPerWorker[i], logger, cfg.Metrics)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var views []account.View
	for i := 0; i < n; i++ {
		for clientID := range clientsPerWorker[i] {
			_, events, err := stores[i].Load(ids.AccountAggregateID(clientID))
			if err != nil {
				return nil, fmt.Errorf("runner: loading final view for %s: %w", clientID, err)
			}
			views = append(views, account.ViewFromEvents(clientID, events))
		}
	}
	return views, nil
}

// read drains src, routing each record to its assigned worker queue, and
// closes every queue when it returns. Any error from src other than
// io.EOF is treated as a malformed row: logged, counted and skipped. read
// returns nil on EOF, or ctx's error if the context is cancelled.
func read(ctx context.Context, src Source, queues []chan ingest.Record, n int, logger Logger, m *metrics.Collectors) error {
	defer func() {
		for _, q := range queues {
			close(q)
		}
	}()

	for {
		rec, err := src.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			logger.Debugf("runner: malformed row: %v", err)
			if m != nil {
				m.RecordsRead.Inc()
				m.RecordsSkipped.WithLabelValues("malformed").Inc()
			}
			continue
		}
		if m != nil {
			m.RecordsRead.Inc()
		}
		if rec.ClientID == "" {
			logger.Debugf("runner: skipping record with empty client id, tx=%s", rec.TxID)
			if m != nil {
				m.RecordsSkipped.WithLabelValues("empty_client").Inc()
			}
			continue
		}

		idx := partition.WorkerIndex(rec.ClientID, n)
		if m != nil {
			m.RecordsRouted.WithLabelValues(strconv.Itoa(idx)).Inc()
		}
		select {
		case queues[idx] <- rec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// work drains queue strictly in receive order through a fresh
// orchestrator over store, recording every client id it ever sees so the
// caller can fold final views after drain.
func work(ctx context.Context, queue <-chan ingest.Record, store eventstore.Store, seen map[ids.ClientID]struct{}, logger Logger, m *metrics.Collectors) error {
	orch := orchestrator.New(store)
	for {
		select {
		case rec, ok := <-queue:
			if !ok {
				return nil
			}
			seen[rec.ClientID] = struct{}{}

			start := time.Now()
			err := orch.Handle(rec)
			if m != nil {
				m.ProcessDuration.Observe(time.Since(start).Seconds())
			}
			if err != nil {
				logger.Debugf("runner: record rejected (type=%s client=%s tx=%s): %v", rec.Type, rec.ClientID, rec.TxID, err)
				if m != nil {
					kind := errorKind(err)
					m.DomainErrors.WithLabelValues(kind).Inc()
					if kind == "duplicate_transaction" {
						m.DuplicatesIgnored.Inc()
					}
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// errorKind classifies a rejected command for the domain_errors_total
// metric label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, transaction.ErrDuplicateTransaction):
		return "duplicate_transaction"
	case errors.Is(err, account.ErrIllegalAmount):
		return "illegal_amount"
	case errors.Is(err, account.ErrAccountLocked):
		return "account_locked"
	case errors.Is(err, account.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, account.ErrDisputeNotFound):
		return "dispute_not_found"
	case errors.Is(err, account.ErrDuplicateDispute):
		return "duplicate_dispute"
	case errors.Is(err, orchestrator.ErrAmountRequired):
		return "amount_required"
	case errors.Is(err, orchestrator.ErrUnknownTransaction):
		return "unknown_transaction"
	case errors.Is(err, orchestrator.ErrDisputeOnWithdrawal):
		return "dispute_on_withdrawal"
	default:
		return "other"
	}
}
