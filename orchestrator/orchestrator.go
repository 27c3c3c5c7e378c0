// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package orchestrator maps one parsed input record onto command(s)
// issued to the Transaction and Account aggregates, coordinating the two
// as a naive saga — record-transaction first, then mutate-account — so
// that duplicate transaction ids are suppressed idempotently without
// needing account-level dedup.
package orchestrator

import (
	"errors"
	"fmt"

	"github.com/ledgerflow/paymentsengine/domain/account"
	"github.com/ledgerflow/paymentsengine/domain/transaction"
	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/ingest"
	"github.com/ledgerflow/paymentsengine/money"
)

// ErrAmountRequired is returned when a deposit or withdrawal row carries
// no amount.
var ErrAmountRequired = errors.New("orchestrator: amount required")

// ErrUnknownTransaction is returned when a dispute/resolve/chargeback
// names a transaction id the engine never recorded.
var ErrUnknownTransaction = errors.New("orchestrator: unknown transaction")

// ErrDisputeOnWithdrawal is returned when a dispute targets a
// withdrawal, which is disallowed: a withdrawal never returns funds the
// way a reversed deposit does, so disputing one has no sound recovery.
var ErrDisputeOnWithdrawal = errors.New("orchestrator: dispute not allowed for withdrawals")

// Orchestrator processes one worker's stream of records against its own
// (non-shared) event store.
type Orchestrator struct {
	store eventstore.Store
}

// New returns an Orchestrator backed by store. The caller owns store
// exclusively: no locking is required here because records are
// processed strictly sequentially by a single worker.
func New(store eventstore.Store) *Orchestrator {
	return &Orchestrator{store: store}
}

// Handle processes one record by dispatching on its type. The returned
// error is always non-fatal: callers log it and continue — no error
// here ever aborts the run.
func (o *Orchestrator) Handle(r ingest.Record) error {
	switch r.Type {
	case ingest.TypeDeposit:
		return o.handleDepositOrWithdrawal(r, transaction.KindDeposit)
	case ingest.TypeWithdrawal:
		return o.handleDepositOrWithdrawal(r, transaction.KindWithdrawal)
	case ingest.TypeDispute:
		return o.handleDispute(r)
	case ingest.TypeResolve:
		return o.handleResolve(r)
	case ingest.TypeChargeback:
		return o.handleChargeback(r)
	default:
		return fmt.Errorf("orchestrator: unhandled record type %q", r.Type)
	}
}

func (o *Orchestrator) handleDepositOrWithdrawal(r ingest.Record, kind transaction.Kind) error {
	if r.Amount == nil {
		return fmt.Errorf("%w: tx %s", ErrAmountRequired, r.TxID)
	}

	// RecordTransaction is the dedup gate: if it fails, the account
	// command is never attempted.
	if err := o.recordTransaction(r.ClientID, r.TxID, kind, *r.Amount); err != nil {
		return err
	}

	aggID := ids.AccountAggregateID(r.ClientID)
	version, events, err := o.store.Load(aggID)
	if err != nil {
		return fmt.Errorf("orchestrator: loading account %s: %w", r.ClientID, err)
	}
	acc, err := account.Rehydrate(events)
	if err != nil {
		return err
	}

	var payload interface{}
	if kind == transaction.KindDeposit {
		payload, err = account.DecideDeposit(acc, r.ClientID, r.TxID, *r.Amount)
	} else {
		payload, err = account.DecideWithdraw(acc, r.ClientID, r.TxID, *r.Amount)
	}
	if err != nil {
		return err
	}
	return o.store.Append(aggID, version, []interface{}{payload})
}

func (o *Orchestrator) handleDispute(r ingest.Record) error {
	tx, err := o.loadTransaction(r.TxID)
	if err != nil {
		return err
	}
	if !tx.Recorded() {
		return fmt.Errorf("%w: tx %s", ErrUnknownTransaction, r.TxID)
	}
	if tx.Kind() == transaction.KindWithdrawal {
		return fmt.Errorf("%w: tx %s", ErrDisputeOnWithdrawal, r.TxID)
	}

	aggID := ids.AccountAggregateID(r.ClientID)
	version, events, err := o.store.Load(aggID)
	if err != nil {
		return fmt.Errorf("orchestrator: loading account %s: %w", r.ClientID, err)
	}
	acc, err := account.Rehydrate(events)
	if err != nil {
		return err
	}
	// The disputed amount comes from the Transaction aggregate's memoized
	// amount, never from the input record: dispute rows carry no amount
	// column.
	evt, err := account.DecideDispute(acc, r.ClientID, r.TxID, tx.Amount())
	if err != nil {
		return err
	}
	return o.store.Append(aggID, version, []interface{}{evt})
}

func (o *Orchestrator) handleResolve(r ingest.Record) error {
	if _, err := o.requireTransaction(r.TxID); err != nil {
		return err
	}
	aggID := ids.AccountAggregateID(r.ClientID)
	version, events, err := o.store.Load(aggID)
	if err != nil {
		return fmt.Errorf("orchestrator: loading account %s: %w", r.ClientID, err)
	}
	acc, err := account.Rehydrate(events)
	if err != nil {
		return err
	}
	evt, err := account.DecideResolve(acc, r.ClientID, r.TxID)
	if err != nil {
		// Naturally occurs when there is no matching open dispute; swallowed
		// by the caller as a non-fatal rejection.
		return err
	}
	return o.store.Append(aggID, version, []interface{}{evt})
}

func (o *Orchestrator) handleChargeback(r ingest.Record) error {
	if _, err := o.requireTransaction(r.TxID); err != nil {
		return err
	}
	aggID := ids.AccountAggregateID(r.ClientID)
	version, events, err := o.store.Load(aggID)
	if err != nil {
		return fmt.Errorf("orchestrator: loading account %s: %w", r.ClientID, err)
	}
	acc, err := account.Rehydrate(events)
	if err != nil {
		return err
	}
	evt, err := account.DecideChargeback(acc, r.ClientID, r.TxID)
	if err != nil {
		return err
	}
	return o.store.Append(aggID, version, []interface{}{evt})
}

func (o *Orchestrator) recordTransaction(clientID ids.ClientID, txID ids.TxID, kind transaction.Kind, amount money.Amount) error {
	aggID := ids.TransactionAggregateID(txID)
	version, events, err := o.store.Load(aggID)
	if err != nil {
		return fmt.Errorf("orchestrator: loading transaction %s: %w", txID, err)
	}
	tx, err := transaction.Rehydrate(events)
	if err != nil {
		return err
	}
	evt, err := transaction.Decide(tx, clientID, txID, kind, amount)
	if err != nil {
		return err
	}
	return o.store.Append(aggID, version, []interface{}{evt})
}

func (o *Orchestrator) loadTransaction(txID ids.TxID) (transaction.Transaction, error) {
	aggID := ids.TransactionAggregateID(txID)
	_, events, err := o.store.Load(aggID)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("orchestrator: loading transaction %s: %w", txID, err)
	}
	return transaction.Rehydrate(events)
}

func (o *Orchestrator) requireTransaction(txID ids.TxID) (transaction.Transaction, error) {
	tx, err := o.loadTransaction(txID)
	if err != nil {
		return transaction.Transaction{}, err
	}
	if !tx.Recorded() {
		return transaction.Transaction{}, fmt.Errorf("%w: tx %s", ErrUnknownTransaction, txID)
	}
	return tx, nil
}
