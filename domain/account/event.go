// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import (
	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/money"
)

// Deposited is emitted by a successful Deposit command.
type Deposited struct {
	ClientID ids.ClientID
	TxID     ids.TxID
	Amount   money.Amount
}

// Withdrawn is emitted by a successful Withdraw command.
type Withdrawn struct {
	ClientID ids.ClientID
	TxID     ids.TxID
	Amount   money.Amount
}

// Disputed is emitted by a successful Dispute command.
type Disputed struct {
	ClientID ids.ClientID
	TxID     ids.TxID
	Amount   money.Amount
}

// Resolved is emitted by a successful Resolve command.
type Resolved struct {
	ClientID ids.ClientID
	TxID     ids.TxID
	Amount   money.Amount
}

// Chargedback is emitted by a successful Chargeback command.
type Chargedback struct {
	ClientID ids.ClientID
	TxID     ids.TxID
	Amount   money.Amount
}
