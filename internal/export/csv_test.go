package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/alienterprises/cashbook/internal/domain"
)

func TestWriteCSV(t *testing.T) {
	txs := []domain.Transaction{
		{
			ID:            "txn_1",
			Date:          time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			Type:          domain.TypeCredit,
			PaymentMethod: domain.PaymentCash,
			Company:       "Ali Textiles",
			Location:      "Shop 1",
			RecordedBy:    "user-1",
			Amount:        350,
			Breakdown:     domain.NoteCounts{100: 3, 50: 1},
		},
		{
			ID:            "txn_2",
			Date:          time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC),
			Type:          domain.TypeDebit,
			PaymentMethod: domain.PaymentUPI,
			Location:      "Shop 1",
			RecordedBy:    "user-1",
			Amount:        1200,
			Notes:         "supplier payment",
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, txs); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}
	if records[0][0] != "ID" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "txn_1" || records[1][8] != "350" {
		t.Errorf("row 1 = %v", records[1])
	}
	if records[2][10] != "" {
		t.Errorf("UPI row should have empty breakdown cell, got %q", records[2][10])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("empty export should be header only, got %d records", len(records))
	}
}
