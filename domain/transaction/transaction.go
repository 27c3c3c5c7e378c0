// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transaction implements the Transaction aggregate: a dedup gate
// plus amount memoization for later dispute lookup.
package transaction

import (
	"errors"

	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/money"
)

// ErrDuplicateTransaction is returned when RecordTransaction is issued
// against an aggregate that already recorded a transaction.
var ErrDuplicateTransaction = errors.New("transaction: duplicate transaction")

// Kind distinguishes which payment operation a transaction originated
// from. It is memoized so a later dispute can reject disputes against
// withdrawals.
type Kind int

const (
	// KindUnknown is the zero value; never observed on a Recorded transaction.
	KindUnknown Kind = iota
	KindDeposit
	KindWithdrawal
)

// Recorded is the event emitted when a transaction id is seen for the
// first time.
type Recorded struct {
	ClientID ids.ClientID
	TxID     ids.TxID
	Kind     Kind
	Amount   money.Amount
}

// Transaction is the aggregate state: Fresh (zero value) or Recorded
// (terminal with respect to commands).
type Transaction struct {
	recorded bool
	clientID ids.ClientID
	kind     Kind
	amount   money.Amount
}

// Recorded reports whether this transaction id has already been recorded.
func (t Transaction) Recorded() bool { return t.recorded }

// Kind returns the memoized transaction kind. Only meaningful if Recorded.
func (t Transaction) Kind() Kind { return t.kind }

// Amount returns the memoized amount. Only meaningful if Recorded.
func (t Transaction) Amount() money.Amount { return t.amount }

// ClientID returns the memoized owning client. Only meaningful if Recorded.
func (t Transaction) ClientID() ids.ClientID { return t.clientID }

// apply folds a single event onto the aggregate.
func (t Transaction) apply(e Recorded) Transaction {
	t.recorded = true
	t.clientID = e.ClientID
	t.kind = e.Kind
	t.amount = e.Amount
	return t
}

// Rehydrate folds a transaction's event envelope into current state.
func Rehydrate(events []eventstore.Event) (Transaction, error) {
	var t Transaction
	for _, evt := range events {
		rec, ok := evt.Payload.(Recorded)
		if !ok {
			return Transaction{}, errors.New("transaction: unexpected event payload type")
		}
		t = t.apply(rec)
	}
	return t, nil
}

// Decide evaluates the RecordTransaction command against current state t,
// returning the event to append or an error. Fresh -> emits Recorded;
// Recorded -> ErrDuplicateTransaction.
func Decide(t Transaction, clientID ids.ClientID, txID ids.TxID, kind Kind, amount money.Amount) (Recorded, error) {
	if t.recorded {
		return Recorded{}, ErrDuplicateTransaction
	}
	return Recorded{
		ClientID: clientID,
		TxID:     txID,
		Kind:     kind,
		Amount:   amount,
	}, nil
}
