// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package partition

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/paymentsengine/ids"
)

func TestWorkerIndexIsPureFunctionOfClientID(t *testing.T) {
	clientID := ids.ClientID("client-42")
	first := WorkerIndex(clientID, 8)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, WorkerIndex(clientID, 8))
	}
}

func TestWorkerIndexInRange(t *testing.T) {
	for n := 1; n <= 16; n++ {
		idx := WorkerIndex(ids.ClientID("some-client"), n)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, n)
	}
}

func TestWorkerIndexPanicsOnNonPositiveN(t *testing.T) {
	require.Panics(t, func() { WorkerIndex("1", 0) })
}

func TestWorkerIndexDistributesDistinctClients(t *testing.T) {
	n := 4
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		clientID := ids.ClientID(string(rune('a' + i%26)))
		seen[WorkerIndex(clientID, n)] = true
	}
	require.Greater(t, len(seen), 1, "expected distinct clients to spread across more than one worker")
}
