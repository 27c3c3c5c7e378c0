// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package partition implements the deterministic client-to-worker
// router: a pure function of client id and worker count that guarantees
// all records for one client land on the same worker, so account
// aggregates are never concurrently mutated.
package partition

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ledgerflow/paymentsengine/ids"
)

// WorkerIndex returns the index in [0, n) that all records for clientID
// must be routed to. It is a pure function of clientID and n: no
// randomness, no mutable state. Different choices of hash function yield
// different assignments but identical final account state.
func WorkerIndex(clientID ids.ClientID, n int) int {
	if n <= 0 {
		panic("partition: n must be positive")
	}
	h := xxhash.Sum64String(string(clientID))
	return int(h % uint64(n))
}
