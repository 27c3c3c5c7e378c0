// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ids"
)

func TestViewFromEventsFoldsFullHistory(t *testing.T) {
	events := []eventstore.Event{
		{Payload: Deposited{ClientID: client, TxID: "1", Amount: mustAmount(t, "10.0")}},
		{Payload: Disputed{ClientID: client, TxID: "1", Amount: mustAmount(t, "10.0")}},
		{Payload: Chargedback{ClientID: client, TxID: "1", Amount: mustAmount(t, "10.0")}},
	}

	v := ViewFromEvents(client, events)
	require.Equal(t, ids.ClientID("1"), v.ClientID)
	require.Equal(t, 0, v.Available.Cmp(mustAmount(t, "0")))
	require.Equal(t, 0, v.Held.Cmp(mustAmount(t, "0")))
	require.True(t, v.Locked)
}

func TestViewFromEventsEmptyHistoryIsZero(t *testing.T) {
	v := ViewFromEvents(client, nil)
	require.True(t, v.Available.IsNegative() == false && !v.Available.IsPositive())
	require.False(t, v.Locked)
}
