// Package localdb is the file-backed local transaction cache. It plays the
// role of the browser-local store: a key-by-ID cache of whatever transaction
// set is currently authoritative, plus the company registry.
package localdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/store"
)

// dbState is the on-disk document. The whole file is rewritten on every
// mutation; there is no partial update.
type dbState struct {
	Transactions map[string]domain.Transaction `json:"transactions"`
	Companies    []string                      `json:"companies"`
}

// DB is a JSON-file transaction cache. Safe for concurrent use. Data
// reachable only through the file is rewritten atomically (temp file +
// rename) so a crash mid-write never leaves a torn document.
type DB struct {
	mu    sync.RWMutex
	path  string
	state dbState
	log   zerolog.Logger
}

// Open loads the database at path, creating an empty one if the file does
// not exist. Malformed content is discarded entirely and the database resets
// to empty: an inconsistent partial set is worse than no cache at all.
func Open(path string, log zerolog.Logger) (*DB, error) {
	db := &DB{
		path: path,
		log:  log,
		state: dbState{
			Transactions: make(map[string]domain.Transaction),
		},
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open local db %s: %w: %v", path, domain.ErrStoreUnavailable, err)
	}

	var loaded dbState
	if err := json.Unmarshal(raw, &loaded); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Local db corrupt, resetting to empty")
		if err := db.flush(); err != nil {
			return nil, err
		}
		return db, nil
	}
	if loaded.Transactions == nil {
		loaded.Transactions = make(map[string]domain.Transaction)
	}
	db.state = loaded
	return db, nil
}

// GetAll implements store.LocalStore.
func (db *DB) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(db.state.Transactions))
	for _, tx := range db.state.Transactions {
		out = append(out, tx)
	}
	domain.SortByDateDesc(out)
	return out, nil
}

// Put implements store.LocalStore.
func (db *DB) Put(ctx context.Context, tx domain.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("put: transaction ID is required")
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.Transactions[tx.ID] = tx
	return db.flush()
}

// Delete implements store.LocalStore. Deleting an absent ID is a no-op.
func (db *DB) Delete(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.state.Transactions[id]; !ok {
		return nil
	}
	delete(db.state.Transactions, id)
	return db.flush()
}

// ClearAndRepopulate implements store.LocalStore. The cache becomes exactly
// the given set.
func (db *DB) ClearAndRepopulate(ctx context.Context, txs []domain.Transaction) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.Transactions = make(map[string]domain.Transaction, len(txs))
	for _, tx := range txs {
		db.state.Transactions[tx.ID] = tx
	}
	return db.flush()
}

// Clear implements store.LocalStore.
func (db *DB) Clear(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.Transactions = make(map[string]domain.Transaction)
	return db.flush()
}

// GetCompanies implements store.CompanyStore.
func (db *DB) GetCompanies(ctx context.Context) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]string(nil), db.state.Companies...), nil
}

// SaveCompanies implements store.CompanyStore.
func (db *DB) SaveCompanies(ctx context.Context, names []string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.Companies = append([]string(nil), names...)
	return db.flush()
}

// flush writes the whole state to disk. Callers hold db.mu.
func (db *DB) flush() error {
	raw, err := json.MarshalIndent(db.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local db: %w", err)
	}

	dir := filepath.Dir(db.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("flush local db: %w: %v", domain.ErrStoreUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, ".cashbook-*.json")
	if err != nil {
		return fmt.Errorf("flush local db: %w: %v", domain.ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush local db: %w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("flush local db: %w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmpName, db.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("flush local db: %w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Ensure DB satisfies the boundary contracts.
var (
	_ store.LocalStore   = (*DB)(nil)
	_ store.CompanyStore = (*DB)(nil)
)
