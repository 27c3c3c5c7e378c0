// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runner

import (
	"context"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/ingest"
	"github.com/ledgerflow/paymentsengine/money"
)

// sliceSource replays a fixed slice of records, then io.EOF.
type sliceSource struct {
	records []ingest.Record
	i       int
}

func (s *sliceSource) Next() (ingest.Record, error) {
	if s.i >= len(s.records) {
		return ingest.Record{}, io.EOF
	}
	r := s.records[s.i]
	s.i++
	return r, nil
}

func mustAmount(t *testing.T, s string) *money.Amount {
	t.Helper()
	a, err := money.New(s)
	require.NoError(t, err)
	return &a
}

func TestRunProducesOneViewPerClientAcrossWorkers(t *testing.T) {
	src := &sliceSource{records: []ingest.Record{
		{Type: ingest.TypeDeposit, ClientID: "1", TxID: "1", Amount: mustAmount(t, "1.0")},
		{Type: ingest.TypeDeposit, ClientID: "2", TxID: "2", Amount: mustAmount(t, "2.0")},
		{Type: ingest.TypeDeposit, ClientID: "1", TxID: "3", Amount: mustAmount(t, "2.0")},
		{Type: ingest.TypeWithdrawal, ClientID: "1", TxID: "4", Amount: mustAmount(t, "1.5")},
		{Type: ingest.TypeWithdrawal, ClientID: "2", TxID: "5", Amount: mustAmount(t, "3.0")},
	}}

	views, err := Run(context.Background(), src, func() eventstore.Store { return eventstore.NewMemory() }, Config{
		Workers:   3,
		QueueSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, views, 2)

	sort.Slice(views, func(i, j int) bool { return views[i].ClientID < views[j].ClientID })
	require.Equal(t, ids.ClientID("1"), views[0].ClientID)
	require.Equal(t, 0, views[0].Available.Cmp(*mustAmount(t, "1.5")))
	require.Equal(t, ids.ClientID("2"), views[1].ClientID)
	require.Equal(t, 0, views[1].Available.Cmp(*mustAmount(t, "2.0")))
}

func TestRunSkipsEmptyClientIDRows(t *testing.T) {
	src := &sliceSource{records: []ingest.Record{
		{Type: ingest.TypeDeposit, ClientID: "", TxID: "1", Amount: mustAmount(t, "1.0")},
		{Type: ingest.TypeDeposit, ClientID: "1", TxID: "2", Amount: mustAmount(t, "1.0")},
	}}

	views, err := Run(context.Background(), src, func() eventstore.Store { return eventstore.NewMemory() }, Config{Workers: 1})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, ids.ClientID("1"), views[0].ClientID)
}

func TestRunSingleWorkerIsDeterministic(t *testing.T) {
	records := []ingest.Record{
		{Type: ingest.TypeDeposit, ClientID: "7", TxID: "1", Amount: mustAmount(t, "3.0")},
		{Type: ingest.TypeWithdrawal, ClientID: "7", TxID: "2", Amount: mustAmount(t, "1.0")},
	}

	views, err := Run(context.Background(), &sliceSource{records: records}, func() eventstore.Store { return eventstore.NewMemory() }, Config{Workers: 1})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, 0, views[0].Available.Cmp(*mustAmount(t, "2.0")))
}
