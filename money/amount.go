// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package money implements the exact fixed-point decimal type used for
// account balances and transaction amounts throughout the engine.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxScale is the largest number of fractional digits a legal payment
// amount may carry.
const MaxScale = 4

// Amount is a signed fixed-point decimal backed by an arbitrary-precision
// base-10 representation. All arithmetic is exact; there is no binary
// floating point anywhere in this type.
type Amount struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Amount{d: decimal.Zero}

// New builds an Amount from a decimal string such as "12.3400". Returns an
// error if s is not a valid decimal literal.
func New(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return Amount{d: d}, nil
}

// FromInt64Scaled builds an Amount equal to value * 10^-scale, primarily for
// tests and literals (e.g. FromInt64Scaled(12345, 4) == 1.2345).
func FromInt64Scaled(value int64, scale int32) Amount {
	return Amount{d: decimal.New(value, -scale)}
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{d: a.d.Add(b.d)}
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return Amount{d: a.d.Sub(b.d)}
}

// Cmp returns -1, 0 or 1 as a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.d.Cmp(b.d)
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool { return a.Cmp(b) < 0 }

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool { return a.d.Sign() > 0 }

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool { return a.d.Sign() < 0 }

// Scale returns the number of fractional digits in a's native
// representation.
func (a Amount) Scale() int32 {
	exp := a.d.Exponent()
	if exp >= 0 {
		return 0
	}
	return -exp
}

// LegalForCommand reports whether a is a legal payment amount: strictly
// positive and with at most MaxScale fractional digits.
func (a Amount) LegalForCommand() bool {
	return a.IsPositive() && a.Scale() <= MaxScale
}

// String renders a with its native scale preserved (e.g. "1.0", "1.2345"),
// never normalized or rounded.
func (a Amount) String() string {
	return a.d.StringFixed(a.Scale())
}
