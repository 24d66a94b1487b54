package localdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/alienterprises/cashbook/internal/domain"
)

func testTx(id string, day int) domain.Transaction {
	return domain.Transaction{
		ID:            id,
		Date:          time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC),
		Type:          domain.TypeCredit,
		PaymentMethod: domain.PaymentCash,
		Location:      "Shop 1",
		RecordedBy:    "user-1",
		Amount:        100,
		Breakdown:     domain.NoteCounts{100: 1},
	}
}

func TestPutGetDeleteRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashbook.json")
	db, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	ctx := context.Background()

	if err := db.Put(ctx, testTx("txn_1", 1)); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := db.Put(ctx, testTx("txn_2", 3)); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := db.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetAll() returned %d transactions, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != "txn_2" {
		t.Errorf("GetAll() order = %s first, want txn_2", got[0].ID)
	}

	if err := db.Delete(ctx, "txn_1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	// Absent ID is a no-op, not an error.
	if err := db.Delete(ctx, "txn_1"); err != nil {
		t.Fatalf("Delete() of absent ID error: %v", err)
	}

	got, _ = db.GetAll(ctx)
	if len(got) != 1 || got[0].ID != "txn_2" {
		t.Errorf("after delete GetAll() = %v", got)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashbook.json")
	ctx := context.Background()

	db, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if err := db.Put(ctx, testTx("txn_1", 1)); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := db.SaveCompanies(ctx, []string{"Ali Textiles"}); err != nil {
		t.Fatalf("SaveCompanies() error: %v", err)
	}

	reopened, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	txs, _ := reopened.GetAll(ctx)
	if len(txs) != 1 || txs[0].ID != "txn_1" {
		t.Errorf("reopened GetAll() = %v, want txn_1", txs)
	}
	if txs[0].Breakdown[100] != 1 {
		t.Errorf("breakdown lost across reopen: %v", txs[0].Breakdown)
	}
	companies, _ := reopened.GetCompanies(ctx)
	if len(companies) != 1 || companies[0] != "Ali Textiles" {
		t.Errorf("reopened GetCompanies() = %v", companies)
	}
}

func TestClearAndRepopulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashbook.json")
	ctx := context.Background()

	db, _ := Open(path, zerolog.Nop())
	db.Put(ctx, testTx("old_1", 1))
	db.Put(ctx, testTx("old_2", 2))

	if err := db.ClearAndRepopulate(ctx, []domain.Transaction{testTx("new_1", 5)}); err != nil {
		t.Fatalf("ClearAndRepopulate() error: %v", err)
	}

	got, _ := db.GetAll(ctx)
	if len(got) != 1 || got[0].ID != "new_1" {
		t.Errorf("GetAll() after repopulate = %v, want only new_1", got)
	}
}

func TestCorruptFileResetsToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cashbook.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	db, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() of corrupt file error: %v", err)
	}

	got, err := db.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("corrupt db must reset to empty, got %v", got)
	}

	// The reset must be durable: reopening sees a clean empty db.
	reopened, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen after reset error: %v", err)
	}
	got, _ = reopened.GetAll(context.Background())
	if len(got) != 0 {
		t.Errorf("reset was not persisted, got %v", got)
	}
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cashbook.json")

	db, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	got, _ := db.GetAll(context.Background())
	if len(got) != 0 {
		t.Errorf("fresh db should be empty, got %v", got)
	}

	// First write creates the directory and file.
	if err := db.Put(context.Background(), testTx("txn_1", 1)); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected db file to exist after first write: %v", err)
	}
}
