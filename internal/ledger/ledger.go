// Package ledger maintains the in-memory transaction set and the derived
// note-denomination vault, and keeps the two consistent across every
// mutation. Persistence to the local and remote stores happens in the
// background after the in-memory effect is already visible.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/store"
)

// persistTimeout bounds each background store write so an unreachable
// remote cannot hang a persistence goroutine indefinitely.
const persistTimeout = 15 * time.Second

// Ledger is the engine owning the transaction list and the vault. All
// mutations go through it; the list and the vault are always updated in the
// same critical section, so no caller can observe one ahead of the other.
type Ledger struct {
	mu    sync.RWMutex
	txs   []domain.Transaction // descending date order
	vault domain.NoteCounts
	scope domain.Scope

	companiesMu sync.RWMutex
	companies   []string

	local     store.LocalStore
	remote    store.RemoteStore // nil when no remote is configured
	registry  store.CompanyStore
	status    *store.StatusTracker
	log       zerolog.Logger
	connected bool

	wg sync.WaitGroup // in-flight background persistence
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRemote attaches a remote store. Background persistence only reaches
// the remote while the ledger is marked connected.
func WithRemote(r store.RemoteStore) Option {
	return func(l *Ledger) { l.remote = r }
}

// WithCompanyRegistry attaches persistence for the company name registry.
func WithCompanyRegistry(r store.CompanyStore) Option {
	return func(l *Ledger) { l.registry = r }
}

// New creates a ledger over the given local store. The scope controls which
// transactions the maintained vault counts, mirroring the visibility rule of
// the listing views.
func New(local store.LocalStore, status *store.StatusTracker, scope domain.Scope, log zerolog.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		vault:  domain.NewVault(),
		scope:  scope,
		local:  local,
		status: status,
		log:    log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load populates the ledger from the local store. Corrupt persisted state
// resets the ledger to empty rather than risk a partial set.
func (l *Ledger) Load(ctx context.Context) error {
	txs, err := l.local.GetAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptState) {
			l.log.Warn().Err(err).Msg("Local store corrupt, starting from an empty ledger")
			l.Install(nil)
			return nil
		}
		return fmt.Errorf("load local transactions: %w", err)
	}
	l.Install(txs)

	if l.registry != nil {
		names, err := l.registry.GetCompanies(ctx)
		if err != nil {
			l.log.Warn().Err(err).Msg("Failed to load company registry")
		} else {
			l.companiesMu.Lock()
			l.companies = names
			l.companiesMu.Unlock()
		}
	}

	l.log.Info().Int("transaction_count", len(txs)).Msg("Ledger loaded from local store")
	return nil
}

// Install replaces the whole transaction set with the given one, re-sorts it,
// and recomputes the vault. The reconciliation engine uses this to hand over
// a merged set.
func (l *Ledger) Install(txs []domain.Transaction) {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	domain.SortByDateDesc(sorted)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.txs = sorted
	l.vault = RecalculateVault(sorted, l.scope)
}

// Transactions returns a copy of the full transaction set, newest first.
func (l *Ledger) Transactions() []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// Vault returns a copy of the current vault.
func (l *Ledger) Vault() domain.NoteCounts {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vault.Clone()
}

// SetRemoteConnected records whether the remote store is reachable.
// Background persistence skips the remote while disconnected.
func (l *Ledger) SetRemoteConnected(connected bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.connected = connected
}

// RemoteConnected reports the last known reachability of the remote store.
func (l *Ledger) RemoteConnected() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.connected
}

// ClearLocal wipes the local store and resets the in-memory ledger and vault.
func (l *Ledger) ClearLocal(ctx context.Context) error {
	if err := l.local.Clear(ctx); err != nil {
		return fmt.Errorf("clear local store: %w", err)
	}
	l.Install(nil)
	l.log.Info().Msg("Local store cleared")
	return nil
}

// Flush waits for all in-flight background persistence to finish. Called on
// teardown so pending writes are not abandoned.
func (l *Ledger) Flush() {
	l.wg.Wait()
}

func (l *Ledger) find(id string) (domain.Transaction, bool) {
	for _, tx := range l.txs {
		if tx.ID == id {
			return tx, true
		}
	}
	return domain.Transaction{}, false
}
