package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alienterprises/cashbook/internal/config"
	"github.com/alienterprises/cashbook/internal/domain"
)

func newLocalApp(t *testing.T, user domain.User) *App {
	t.Helper()
	cfg := config.Config{
		LocalDBPath: filepath.Join(t.TempDir(), "cashbook.json"),
	}
	a, err := New(context.Background(), cfg, user, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return a
}

func TestAddAndListVisibility(t *testing.T) {
	admin := domain.User{ID: "admin", Privileged: true}
	a := newLocalApp(t, admin)
	ctx := context.Background()

	if _, err := a.AddTransaction(ctx, domain.Draft{
		Type:          domain.TypeCredit,
		PaymentMethod: domain.PaymentCash,
		Location:      "Shop 1",
		RecordedBy:    "user-1",
		Breakdown:     domain.NoteCounts{100: 2},
	}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if _, err := a.AddTransaction(ctx, domain.Draft{
		Type:          domain.TypeCredit,
		PaymentMethod: domain.PaymentUPI,
		Location:      "Shop 1",
		RecordedBy:    "user-2",
		Amount:        900,
	}); err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}

	// Privileged user sees everything.
	if got := len(a.Transactions()); got != 2 {
		t.Errorf("admin sees %d transactions, want 2", got)
	}

	a.Teardown(ctx)

	// A non-privileged user over the same db sees only their own.
	cfg := config.Config{LocalDBPath: a.cfg.LocalDBPath}
	limited, err := New(ctx, cfg, domain.User{ID: "user-1"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := limited.Init(ctx); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	got := limited.Transactions()
	if len(got) != 1 || got[0].RecordedBy != "user-1" {
		t.Errorf("user-1 sees %v, want only own transaction", got)
	}
	// And the vault is scoped the same way: only user-1's cash.
	if v := limited.Vault(); v[100] != 2 {
		t.Errorf("scoped vault[100] = %d, want 2", v[100])
	}
}

func TestDraftDefaultsToSessionUser(t *testing.T) {
	a := newLocalApp(t, domain.User{ID: "user-9", Privileged: true})

	tx, err := a.AddTransaction(context.Background(), domain.Draft{
		Type:          domain.TypeCredit,
		PaymentMethod: domain.PaymentUPI,
		Location:      "Shop 1",
		Amount:        100,
	})
	if err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	if tx.RecordedBy != "user-9" {
		t.Errorf("recordedBy = %s, want session user", tx.RecordedBy)
	}
}

func TestSyncWithoutRemoteIsLocalOnly(t *testing.T) {
	a := newLocalApp(t, domain.User{ID: "user-1", Privileged: true})
	ctx := context.Background()

	if a.TestConnection(ctx) {
		t.Error("TestConnection() must be false without a configured remote")
	}

	tx, err := a.AddTransaction(ctx, domain.Draft{
		Type:          domain.TypeCredit,
		PaymentMethod: domain.PaymentCash,
		Location:      "Shop 1",
		Breakdown:     domain.NoteCounts{500: 1},
	})
	if err != nil {
		t.Fatalf("AddTransaction() error: %v", err)
	}
	a.Ledger().Flush()

	result, err := a.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if result.RemoteAvailable {
		t.Error("RemoteAvailable must be false without a remote")
	}
	if len(result.Final) != 1 || result.Final[0].ID != tx.ID {
		t.Errorf("Sync() final = %v, want the local transaction", result.Final)
	}
}
