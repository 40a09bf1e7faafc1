// Package export writes tabular rows produced by an entity manager's export
// transform to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/manager"
	"github.com/windfab/towerdesk/record"
)

// WriteCSV writes a header row followed by one row per record, with columns
// in the given order. Rows are the output of Manager.ToTabularRows, so field
// names are the configured column headers.
func WriteCSV(w io.Writer, columns []manager.Column, rows []record.Record) error {
	cw := csv.NewWriter(w)

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range rows {
		out := make([]string, len(columns))
		for i, col := range columns {
			out[i] = fields.String(row[col.Header])
		}
		if err := cw.Write(out); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
