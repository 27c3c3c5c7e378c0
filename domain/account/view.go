// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import (
	"github.com/ledgerflow/paymentsengine/eventstore"
	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/money"
)

// View is the read-optimized row derived solely from an account's event
// stream: available, held, total and locked. Total is maintained
// independently of available+held so that the invariant total ==
// available + held is a property of the fold, not an algebraic identity
// baked into the struct.
type View struct {
	ClientID  ids.ClientID
	Available money.Amount
	Held      money.Amount
	Total     money.Amount
	Locked    bool
}

// Fold advances v by one account event.
func (v View) Fold(payload interface{}) View {
	switch e := payload.(type) {
	case Deposited:
		v.ClientID = e.ClientID
		v.Available = v.Available.Add(e.Amount)
		v.Total = v.Total.Add(e.Amount)
	case Withdrawn:
		v.Available = v.Available.Sub(e.Amount)
		v.Total = v.Total.Sub(e.Amount)
	case Disputed:
		v.Available = v.Available.Sub(e.Amount)
		v.Held = v.Held.Add(e.Amount)
	case Resolved:
		v.Available = v.Available.Add(e.Amount)
		v.Held = v.Held.Sub(e.Amount)
	case Chargedback:
		v.Held = v.Held.Sub(e.Amount)
		v.Total = v.Total.Sub(e.Amount)
		v.Locked = true
	}
	return v
}

// ViewFromEvents folds a full account event stream into a View.
func ViewFromEvents(clientID ids.ClientID, events []eventstore.Event) View {
	v := View{ClientID: clientID}
	for _, evt := range events {
		v = v.Fold(evt.Payload)
	}
	return v
}
