package sheets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/alienterprises/cashbook/internal/domain"
)

// Column layout of the Transactions tab. The Timestamp column records when
// the row was written, not the transaction date.
var headers = []string{
	"ID", "Date", "Type", "Payment Method", "Company",
	"Person", "Location", "Recorded By", "Amount",
	"Notes", "Breakdown", "Timestamp",
}

func rowFromTransaction(tx domain.Transaction) ([]interface{}, error) {
	breakdown := "{}"
	if len(tx.Breakdown) > 0 {
		raw, err := json.Marshal(tx.Breakdown)
		if err != nil {
			return nil, fmt.Errorf("encode breakdown for %s: %w", tx.ID, err)
		}
		breakdown = string(raw)
	}

	return []interface{}{
		tx.ID,
		tx.Date.UTC().Format(time.RFC3339),
		string(tx.Type),
		string(tx.PaymentMethod),
		tx.Company,
		tx.Person,
		tx.Location,
		tx.RecordedBy,
		tx.Amount,
		tx.Notes,
		breakdown,
		time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func transactionFromRow(row []interface{}) (domain.Transaction, error) {
	cell := func(i int) string {
		if i < len(row) && row[i] != nil {
			return fmt.Sprint(row[i])
		}
		return ""
	}

	id := cell(0)
	if id == "" {
		return domain.Transaction{}, fmt.Errorf("row has no transaction ID")
	}

	date, err := time.Parse(time.RFC3339, cell(1))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("row %s: bad date %q: %w", id, cell(1), err)
	}

	amount, err := strconv.ParseFloat(cell(8), 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("row %s: bad amount %q: %w", id, cell(8), err)
	}

	tx := domain.Transaction{
		ID:            id,
		Date:          date,
		Type:          domain.TransactionType(cell(2)),
		PaymentMethod: domain.PaymentMethod(cell(3)),
		Company:       cell(4),
		Person:        cell(5),
		Location:      cell(6),
		RecordedBy:    cell(7),
		Amount:        amount,
		Notes:         cell(9),
	}

	if raw := cell(10); raw != "" && raw != "{}" {
		var breakdown domain.NoteCounts
		if err := json.Unmarshal([]byte(raw), &breakdown); err != nil {
			return domain.Transaction{}, fmt.Errorf("row %s: bad breakdown %q: %w", id, raw, err)
		}
		tx.Breakdown = breakdown
	}

	return tx, nil
}
