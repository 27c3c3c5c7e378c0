// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerflow/paymentsengine/domain/account"
	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/ingest"
	"github.com/ledgerflow/paymentsengine/money"
)

func amt(t *testing.T, s string) money.Amount {
	t.Helper()
	a, err := money.New(s)
	require.NoError(t, err)
	return a
}

func amtPtr(t *testing.T, s string) *money.Amount {
	a := amt(t, s)
	return &a
}

func viewOf(t *testing.T, store eventstore.Store, client string) account.View {
	t.Helper()
	_, events, err := store.Load(ids.AccountAggregateID(ids.ClientID(client)))
	require.NoError(t, err)
	return account.ViewFromEvents(ids.ClientID(client), events)
}

func rec(t *testing.T, typ ingest.Type, client, tx string, amount string) ingest.Record {
	r := ingest.Record{
		Type:     typ,
		ClientID: ids.ClientID(client),
		TxID:     ids.TxID(tx),
	}
	if amount != "" {
		r.Amount = amtPtr(t, amount)
	}
	return r
}

func handleAll(t *testing.T, o *Orchestrator, records []ingest.Record) {
	t.Helper()
	for _, r := range records {
		_ = o.Handle(r)
	}
}

// TestWithdrawalRejectedWhenInsufficientFunds exercises a basic
// deposit/withdraw table: client 2's withdrawal exceeds its available
// balance and is rejected as insufficient funds.
func TestWithdrawalRejectedWhenInsufficientFunds(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	handleAll(t, o, []ingest.Record{
		rec(t, ingest.TypeDeposit, "1", "1", "1.0"),
		rec(t, ingest.TypeDeposit, "2", "2", "2.0"),
		rec(t, ingest.TypeDeposit, "1", "3", "2.0"),
		rec(t, ingest.TypeWithdrawal, "1", "4", "1.5"),
		rec(t, ingest.TypeWithdrawal, "2", "5", "3.0"),
	})

	v1 := viewOf(t, store, "1")
	require.Equal(t, 0, v1.Available.Cmp(amt(t, "1.5")))
	require.Equal(t, 0, v1.Held.Cmp(money.Zero))
	require.Equal(t, 0, v1.Total.Cmp(amt(t, "1.5")))
	require.False(t, v1.Locked)

	v2 := viewOf(t, store, "2")
	require.Equal(t, 0, v2.Available.Cmp(amt(t, "2.0")))
	require.False(t, v2.Locked)
}

func TestDisputeThenResolveReturnsFundsToAvailable(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	handleAll(t, o, []ingest.Record{
		rec(t, ingest.TypeDeposit, "1", "1", "1.0"),
		rec(t, ingest.TypeDispute, "1", "1", ""),
		rec(t, ingest.TypeResolve, "1", "1", ""),
	})

	v := viewOf(t, store, "1")
	require.Equal(t, 0, v.Available.Cmp(amt(t, "1.0")))
	require.Equal(t, 0, v.Held.Cmp(money.Zero))
	require.Equal(t, 0, v.Total.Cmp(amt(t, "1.0")))
	require.False(t, v.Locked)
}

func TestDisputeThenChargebackLocksAccount(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	handleAll(t, o, []ingest.Record{
		rec(t, ingest.TypeDeposit, "1", "1", "1.0"),
		rec(t, ingest.TypeDispute, "1", "1", ""),
		rec(t, ingest.TypeChargeback, "1", "1", ""),
		rec(t, ingest.TypeDeposit, "1", "2", "5.0"),
	})

	v := viewOf(t, store, "1")
	require.Equal(t, 0, v.Available.Cmp(money.Zero))
	require.Equal(t, 0, v.Held.Cmp(money.Zero))
	require.Equal(t, 0, v.Total.Cmp(money.Zero))
	require.True(t, v.Locked)
}

func TestDuplicateTransactionIDIsIgnored(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	handleAll(t, o, []ingest.Record{
		rec(t, ingest.TypeDeposit, "1", "1", "1.0"),
		rec(t, ingest.TypeDeposit, "1", "1", "9.0"),
	})

	v := viewOf(t, store, "1")
	require.Equal(t, 0, v.Available.Cmp(amt(t, "1.0")))
}

func TestDisputeOnWithdrawalIsRejected(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	handleAll(t, o, []ingest.Record{
		rec(t, ingest.TypeDeposit, "1", "1", "5.0"),
		rec(t, ingest.TypeWithdrawal, "1", "2", "1.0"),
		rec(t, ingest.TypeDispute, "1", "2", ""),
	})

	v := viewOf(t, store, "1")
	require.Equal(t, 0, v.Available.Cmp(amt(t, "4.0")))
	require.Equal(t, 0, v.Held.Cmp(money.Zero))
}

func TestDisputeExceedingAvailableBalanceIsRejected(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	handleAll(t, o, []ingest.Record{
		rec(t, ingest.TypeDeposit, "1", "1", "1.0"),
		rec(t, ingest.TypeDeposit, "1", "2", "2.0"),
		rec(t, ingest.TypeWithdrawal, "1", "3", "2.5"),
		rec(t, ingest.TypeDispute, "1", "1", ""),
	})

	v := viewOf(t, store, "1")
	require.Equal(t, 0, v.Available.Cmp(amt(t, "0.5")))
	require.Equal(t, 0, v.Held.Cmp(money.Zero))
}

func TestHandleUnknownTransactionTypeRejected(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	err := o.Handle(ingest.Record{Type: "bogus", ClientID: "1", TxID: "1"})
	require.Error(t, err)
}

func TestHandleDepositWithoutAmountRejected(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	err := o.Handle(rec(t, ingest.TypeDeposit, "1", "1", ""))
	require.ErrorIs(t, err, ErrAmountRequired)
}

func TestHandleResolveWithoutDisputeRejected(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	handleAll(t, o, []ingest.Record{
		rec(t, ingest.TypeDeposit, "1", "1", "1.0"),
	})
	err := o.Handle(rec(t, ingest.TypeResolve, "1", "1", ""))
	require.ErrorIs(t, err, account.ErrDisputeNotFound)
}

func TestHandleChargebackUnknownTransactionRejected(t *testing.T) {
	store := eventstore.NewMemory()
	o := New(store)
	err := o.Handle(rec(t, ingest.TypeChargeback, "1", "99", ""))
	require.ErrorIs(t, err, ErrUnknownTransaction)
}
