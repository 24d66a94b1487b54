// Package export writes transaction lists as CSV, using the same column
// layout as the remote spreadsheet so an export and the sheet line up.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alienterprises/cashbook/internal/domain"
)

var header = []string{
	"ID", "Date", "Type", "Payment Method", "Company",
	"Person", "Location", "Recorded By", "Amount", "Notes", "Breakdown",
}

// WriteCSV writes the transactions to w, one row each, preceded by a header.
func WriteCSV(w io.Writer, txs []domain.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, tx := range txs {
		breakdown := ""
		if len(tx.Breakdown) > 0 {
			raw, err := json.Marshal(tx.Breakdown)
			if err != nil {
				return fmt.Errorf("encode breakdown for %s: %w", tx.ID, err)
			}
			breakdown = string(raw)
		}

		record := []string{
			tx.ID,
			tx.Date.UTC().Format(time.RFC3339),
			string(tx.Type),
			string(tx.PaymentMethod),
			tx.Company,
			tx.Person,
			tx.Location,
			tx.RecordedBy,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			tx.Notes,
			breakdown,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %s: %w", tx.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
