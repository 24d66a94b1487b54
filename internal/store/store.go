// Package store defines the boundary contracts between the ledger core and
// its persistence collaborators. The engine depends on these interfaces,
// never on a concrete implementation.
package store

import (
	"context"

	"github.com/alienterprises/cashbook/internal/domain"
)

// Outcome is the observable result of a remote mutation. Unknown means the
// call completed but the true result could not be observed; it must be
// treated as needing a follow-up reconciliation pass, never as success.
type Outcome int

const (
	// OutcomeOK means the remote acknowledged the mutation.
	OutcomeOK Outcome = iota
	// OutcomeFailed means the remote rejected the mutation or the call errored.
	OutcomeFailed
	// OutcomeUnknown means the result could not be observed.
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LocalStore is the persisted transaction cache keyed by ID. After a
// reconciliation it holds a cache of the merged truth, not an independent
// ledger.
type LocalStore interface {
	// GetAll returns every cached transaction.
	GetAll(ctx context.Context) ([]domain.Transaction, error)

	// Put inserts or replaces a transaction by ID.
	Put(ctx context.Context, tx domain.Transaction) error

	// Delete removes a transaction by ID. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id string) error

	// ClearAndRepopulate atomically replaces the whole cache contents.
	ClearAndRepopulate(ctx context.Context, txs []domain.Transaction) error

	// Clear removes every cached transaction.
	Clear(ctx context.Context) error
}

// CompanyStore persists the company registry alongside the transaction cache.
type CompanyStore interface {
	GetCompanies(ctx context.Context) ([]string, error)
	SaveCompanies(ctx context.Context, names []string) error
}

// RemoteStore is the network-backed transaction ledger (one spreadsheet-like
// table). Every mutation returns an Outcome so failure is always observable.
type RemoteStore interface {
	// TestConnection is a cheap reachability probe.
	TestConnection(ctx context.Context) bool

	// GetAll returns every transaction held remotely.
	GetAll(ctx context.Context) ([]domain.Transaction, error)

	// Add appends a transaction.
	Add(ctx context.Context, tx domain.Transaction) (Outcome, error)

	// Update rewrites the transaction with the same ID.
	Update(ctx context.Context, tx domain.Transaction) (Outcome, error)

	// Delete removes the transaction with the given ID.
	Delete(ctx context.Context, id string) (Outcome, error)
}
