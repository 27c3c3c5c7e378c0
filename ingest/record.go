// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ingest reads the input CSV into a lazy sequence of parsed
// records, using the standard library's encoding/csv for tokenization.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ledgerflow/paymentsengine/ids"
	"github.com/ledgerflow/paymentsengine/money"
)

// Type enumerates the five recognized transaction types.
type Type string

const (
	TypeDeposit    Type = "deposit"
	TypeWithdrawal Type = "withdrawal"
	TypeDispute    Type = "dispute"
	TypeResolve    Type = "resolve"
	TypeChargeback Type = "chargeback"
)

// Record is one parsed input row. Amount is nil when the amount column is
// missing or blank; it is parsed for every type when present, and the
// orchestrator ignores it on dispute/resolve/chargeback rows.
type Record struct {
	Type     Type
	ClientID ids.ClientID
	TxID     ids.TxID
	Amount   *money.Amount
}

// Reader yields parsed Records from the input CSV, tolerating whitespace
// around every token.
type Reader struct {
	csv *csv.Reader
}

// NewReader wraps r as a header-skipping, comma-delimited CSV reader.
// The header row (type, client, tx, amount) is consumed and discarded.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("ingest: empty input")
		}
		return nil, fmt.Errorf("ingest: reading header: %w", err)
	}
	return &Reader{csv: cr}, nil
}

// Next returns the next parsed record, io.EOF when the input is
// exhausted, or a parse error describing a malformed row. A malformed
// row is non-fatal: callers should log it and continue reading.
func (r *Reader) Next() (Record, error) {
	row, err := r.csv.Read()
	if err != nil {
		return Record{}, err
	}
	return parseRow(row)
}

func parseRow(row []string) (Record, error) {
	if len(row) < 3 {
		return Record{}, fmt.Errorf("ingest: row has %d columns, need at least 3", len(row))
	}
	rec := Record{
		Type:     Type(strings.TrimSpace(row[0])),
		ClientID: ids.TrimClientID(row[1]),
		TxID:     ids.TrimTxID(row[2]),
	}
	switch rec.Type {
	case TypeDeposit, TypeWithdrawal, TypeDispute, TypeResolve, TypeChargeback:
	default:
		return Record{}, fmt.Errorf("ingest: unknown transaction type %q", rec.Type)
	}
	if len(row) >= 4 {
		raw := strings.TrimSpace(row[3])
		if raw != "" {
			amt, err := money.New(raw)
			if err != nil {
				return Record{}, fmt.Errorf("ingest: row for tx %s: %w", rec.TxID, err)
			}
			rec.Amount = &amt
		}
	}
	return rec, nil
}
