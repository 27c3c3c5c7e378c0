// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package eventstore implements the append-only, per-aggregate event log
// that backs the Transaction and Account aggregates.
package eventstore

import (
	"errors"
	"fmt"
)

// ErrVersionConflict is returned by Append when expectedVersion does not
// match the aggregate's current version, i.e. a concurrent or out-of-order
// write was attempted.
var ErrVersionConflict = errors.New("eventstore: version conflict")

// Event is an immutable fact appended to an aggregate's log. Payload is the
// domain-specific event variant (e.g. an account.Deposited or a
// transaction.Recorded); Version is the 1-based position of this event within
// its aggregate's stream.
type Event struct {
	AggregateID string
	Version     uint64
	Payload     interface{}
}

// Store is the append-only per-aggregate log. An implementation need not
// share state across aggregate ids, and a single Store instance is never
// shared between workers: each worker owns one Store exclusively, so the
// interface itself carries no concurrency guarantees beyond atomicity per
// aggregate id.
type Store interface {
	// Append atomically adds events to aggregateID's log, provided the log
	// currently holds exactly expectedVersion events. Returns
	// ErrVersionConflict if the expectation is stale. The events' Version
	// fields are assigned by Append as expectedVersion+1, expectedVersion+2, ...
	Append(aggregateID string, expectedVersion uint64, payloads []interface{}) error

	// Load replays aggregateID's log in append order, returning its current
	// version (0 if the aggregate has no events) and the full event
	// sequence.
	Load(aggregateID string) (version uint64, events []Event, err error)
}

// Memory is an in-memory Store. It is not safe for concurrent use by
// multiple goroutines against the same aggregate id; callers in this
// engine satisfy that by construction (one worker owns one Memory store
// and processes records strictly sequentially).
type Memory struct {
	logs map[string][]Event
}

// NewMemory returns an empty in-memory event store.
func NewMemory() *Memory {
	return &Memory{logs: make(map[string][]Event)}
}

// Append implements Store.
func (m *Memory) Append(aggregateID string, expectedVersion uint64, payloads []interface{}) error {
	cur := m.logs[aggregateID]
	if uint64(len(cur)) != expectedVersion {
		return fmt.Errorf("%w: aggregate=%s expected=%d actual=%d", ErrVersionConflict, aggregateID, expectedVersion, len(cur))
	}
	if len(payloads) == 0 {
		return nil
	}
	appended := make([]Event, 0, len(payloads))
	for i, p := range payloads {
		appended = append(appended, Event{
			AggregateID: aggregateID,
			Version:     expectedVersion + uint64(i) + 1,
			Payload:     p,
		})
	}
	// Atomic from the caller's point of view: the slice is only replaced
	// once every new event has been constructed above.
	m.logs[aggregateID] = append(cur, appended...)
	return nil
}

// Load implements Store.
func (m *Memory) Load(aggregateID string) (uint64, []Event, error) {
	log := m.logs[aggregateID]
	return uint64(len(log)), log, nil
}
