// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package account implements the Account aggregate and its view
// projection: deposit/withdrawal/dispute/resolve/chargeback with
// held-funds bookkeeping and terminal locking.
package account

import (
	"fmt"

	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/money"
)

// Account is the aggregate state: locked flag, available/held balances,
// and the set of currently open disputes.
type Account struct {
	locked    bool
	available money.Amount
	held      money.Amount
	disputes  map[ids.TxID]money.Amount
}

// Locked reports whether the account is locked (terminal for balance
// commands).
func (a Account) Locked() bool { return a.locked }

// Available returns the available balance.
func (a Account) Available() money.Amount { return a.available }

// Held returns the held balance.
func (a Account) Held() money.Amount { return a.held }

// Total returns available + held.
func (a Account) Total() money.Amount { return a.available.Add(a.held) }

// fold applies one event payload (Deposited, Withdrawn, Disputed, Resolved
// or Chargedback) to a. Rehydrate type-switches on the same set of types;
// View folds them independently, off the same event stream, so the two
// never drift apart.
func fold(a Account, payload interface{}) Account {
	if a.disputes == nil {
		a.disputes = make(map[ids.TxID]money.Amount)
	}
	switch e := payload.(type) {
	case Deposited:
		a.available = a.available.Add(e.Amount)
	case Withdrawn:
		a.available = a.available.Sub(e.Amount)
	case Disputed:
		a.available = a.available.Sub(e.Amount)
		a.held = a.held.Add(e.Amount)
		a.disputes[e.TxID] = e.Amount
	case Resolved:
		a.available = a.available.Add(e.Amount)
		a.held = a.held.Sub(e.Amount)
		delete(a.disputes, e.TxID)
	case Chargedback:
		a.held = a.held.Sub(e.Amount)
		a.locked = true
		delete(a.disputes, e.TxID)
	}
	return a
}

// Rehydrate folds an account's event envelope into current state.
func Rehydrate(events []eventstore.Event) (Account, error) {
	a := Account{disputes: make(map[ids.TxID]money.Amount)}
	for _, evt := range events {
		switch evt.Payload.(type) {
		case Deposited, Withdrawn, Disputed, Resolved, Chargedback:
			a = fold(a, evt.Payload)
		default:
			return Account{}, fmt.Errorf("account: unexpected event payload type %T", evt.Payload)
		}
	}
	return a, nil
}

// DecideDeposit evaluates a Deposit command. Guards, in order:
// amount-legal, not locked.
func DecideDeposit(a Account, clientID ids.ClientID, txID ids.TxID, amount money.Amount) (Deposited, error) {
	if !amount.LegalForCommand() {
		return Deposited{}, ErrIllegalAmount
	}
	if a.locked {
		return Deposited{}, ErrAccountLocked
	}
	return Deposited{ClientID: clientID, TxID: txID, Amount: amount}, nil
}

// DecideWithdraw evaluates a Withdraw command. Guards, in order:
// amount-legal, not locked, available >= amount.
func DecideWithdraw(a Account, clientID ids.ClientID, txID ids.TxID, amount money.Amount) (Withdrawn, error) {
	if !amount.LegalForCommand() {
		return Withdrawn{}, ErrIllegalAmount
	}
	if a.locked {
		return Withdrawn{}, ErrAccountLocked
	}
	if a.available.LessThan(amount) {
		return Withdrawn{}, ErrInsufficientFunds
	}
	return Withdrawn{ClientID: clientID, TxID: txID, Amount: amount}, nil
}

// DecideDispute evaluates a Dispute command. Guards, in order:
// amount-legal, not locked, tx not already disputed, available >= amount.
// The amount is the one memoized on the Transaction aggregate, not any
// value on the input record: a dispute row never carries its own amount.
func DecideDispute(a Account, clientID ids.ClientID, txID ids.TxID, amount money.Amount) (Disputed, error) {
	if !amount.LegalForCommand() {
		return Disputed{}, ErrIllegalAmount
	}
	if a.locked {
		return Disputed{}, ErrAccountLocked
	}
	if _, open := a.disputes[txID]; open {
		return Disputed{}, ErrDuplicateDispute
	}
	if a.available.LessThan(amount) {
		return Disputed{}, ErrInsufficientFunds
	}
	return Disputed{ClientID: clientID, TxID: txID, Amount: amount}, nil
}

// DecideResolve evaluates a Resolve command. Guards, in order: not
// locked, tx has an open dispute.
func DecideResolve(a Account, clientID ids.ClientID, txID ids.TxID) (Resolved, error) {
	if a.locked {
		return Resolved{}, ErrAccountLocked
	}
	d, open := a.disputes[txID]
	if !open {
		return Resolved{}, ErrDisputeNotFound
	}
	return Resolved{ClientID: clientID, TxID: txID, Amount: d}, nil
}

// DecideChargeback evaluates a Chargeback command. Guards, in order: not
// locked, tx has an open dispute.
func DecideChargeback(a Account, clientID ids.ClientID, txID ids.TxID) (Chargedback, error) {
	if a.locked {
		return Chargedback{}, ErrAccountLocked
	}
	d, open := a.disputes[txID]
	if !open {
		return Chargedback{}, ErrDisputeNotFound
	}
	return Chargedback{ClientID: clientID, TxID: txID, Amount: d}, nil
}
