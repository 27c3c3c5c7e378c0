// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package account

import "errors"

// Domain error taxonomy for the Account aggregate.
var (
	// ErrIllegalAmount: non-positive amount, or scale > money.MaxScale.
	ErrIllegalAmount = errors.New("account: illegal amount")
	// ErrAccountLocked: any balance-mutating command issued after a chargeback.
	ErrAccountLocked = errors.New("account: account locked")
	// ErrInsufficientFunds: a withdrawal or dispute would drive available below zero.
	ErrInsufficientFunds = errors.New("account: insufficient funds")
	// ErrDisputeNotFound: resolve/chargeback with no matching open dispute.
	ErrDisputeNotFound = errors.New("account: dispute not found")
	// ErrDuplicateDispute: dispute issued against a transaction already disputed.
	ErrDuplicateDispute = errors.New("account: duplicate dispute")
)
