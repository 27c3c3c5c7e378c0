// (c) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ids defines the opaque identifier types used as aggregate keys
// and partition hash keys throughout the engine. This package has no
// dependencies on other packages to avoid import cycles.
package ids

import "strings"

// ClientID identifies an account holder. Equality is byte-exact once
// trimmed of surrounding whitespace by the input layer.
type ClientID string

// TxID identifies a transaction. Equality is byte-exact once trimmed of
// surrounding whitespace by the input layer.
type TxID string

// TrimClientID trims surrounding whitespace the way the input layer does.
func TrimClientID(s string) ClientID { return ClientID(strings.TrimSpace(s)) }

// TrimTxID trims surrounding whitespace the way the input layer does.
func TrimTxID(s string) TxID { return TxID(strings.TrimSpace(s)) }

// AccountAggregateID returns the event-store aggregate id for a client's
// account.
func AccountAggregateID(c ClientID) string { return "Account-" + string(c) }

// TransactionAggregateID returns the event-store aggregate id for a
// transaction.
func TransactionAggregateID(t TxID) string { return "Transaction-" + string(t) }