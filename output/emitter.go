// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package output implements the final table emitter: it projects every
// worker's view store to a single CSV-shaped table.
package output

import (
	"encoding/csv"
	"io"

	"github.com/ledgerflow/paymentsengine/domain/account"
)

// WriteCSV writes the header "client,available,held,total,locked"
// followed by one row per view in views, in the order given. Row order
// across workers is unspecified; this function simply emits whatever
// order it is handed.
func WriteCSV(w io.Writer, views []account.View) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}
	for _, v := range views {
		row := []string{
			string(v.ClientID),
			v.Available.String(),
			v.Held.String(),
			v.Total.String(),
			boolString(v.Locked),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
