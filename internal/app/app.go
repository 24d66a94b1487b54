// Package app wires the engines, stores, and collaborators into one
// explicit application state object with an init/active/teardown lifecycle.
// Nothing in the core reads ambient globals; everything is injected here.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/alienterprises/cashbook/internal/config"
	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/ledger"
	"github.com/alienterprises/cashbook/internal/localdb"
	"github.com/alienterprises/cashbook/internal/notify"
	"github.com/alienterprises/cashbook/internal/sheets"
	"github.com/alienterprises/cashbook/internal/sheetsync"
	"github.com/alienterprises/cashbook/internal/store"
)

// App owns the wired-up core for one user session.
type App struct {
	cfg  config.Config
	log  zerolog.Logger
	user domain.User

	db         *localdb.DB
	remote     store.RemoteStore // nil when no spreadsheet is configured
	status     *store.StatusTracker
	ledger     *ledger.Ledger
	reconciler *sheetsync.Reconciler
	notifier   *notify.Telegram
}

// New builds the application for the given user. A missing spreadsheet ID
// yields a local-only app; everything else still works.
func New(ctx context.Context, cfg config.Config, user domain.User, log zerolog.Logger) (*App, error) {
	db, err := localdb.Open(cfg.LocalDBPath, log)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}

	var remote store.RemoteStore
	if cfg.SpreadsheetID != "" {
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		}
		sheetStore, err := sheets.New(ctx, cfg.SpreadsheetID, cfg.SheetName, log, opts...)
		if err != nil {
			return nil, fmt.Errorf("create sheets store: %w", err)
		}
		remote = sheetStore
	}

	scope := domain.ScopeFor(user)
	status := store.NewStatusTracker(0)

	ledgerOpts := []ledger.Option{ledger.WithCompanyRegistry(db)}
	if remote != nil {
		ledgerOpts = append(ledgerOpts, ledger.WithRemote(remote))
	}

	reconciler := sheetsync.New(db, remote, status, scope, log)
	reconciler.SetTimeout(cfg.SyncTimeout)

	return &App{
		cfg:        cfg,
		log:        log,
		user:       user,
		db:         db,
		remote:     remote,
		status:     status,
		ledger:     ledger.New(db, status, scope, log, ledgerOpts...),
		reconciler: reconciler,
		notifier:   notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, log),
	}, nil
}

// Init loads the local cache into the ledger and, when a remote is
// configured, runs an initial reconciliation. A failed initial sync is not
// fatal: the app keeps operating on the local data.
func (a *App) Init(ctx context.Context) error {
	if err := a.ledger.Load(ctx); err != nil {
		return err
	}

	if a.remote != nil {
		if _, err := a.Sync(ctx); err != nil {
			a.log.Warn().Err(err).Msg("Initial sync failed, continuing with local data")
		}
	}
	return nil
}

// Teardown flushes pending background writes. Call before exit.
func (a *App) Teardown(ctx context.Context) error {
	a.ledger.Flush()
	return nil
}

// Sync runs one reconciliation pass and installs the merged set into the
// ledger. The ledger keeps its previous state if the merge fails.
func (a *App) Sync(ctx context.Context) (*sheetsync.Result, error) {
	result, err := a.reconciler.Reconcile(ctx, a.ledger.Transactions())
	if err != nil {
		return nil, err
	}
	a.ledger.Install(result.Final)
	a.ledger.SetRemoteConnected(result.RemoteAvailable)
	return result, nil
}

// AddTransaction records a draft on behalf of the session user and fires a
// best-effort notification.
func (a *App) AddTransaction(ctx context.Context, draft domain.Draft) (domain.Transaction, error) {
	if draft.RecordedBy == "" {
		draft.RecordedBy = a.user.ID
	}
	tx, err := a.ledger.AddTransaction(ctx, draft)
	if err != nil {
		return domain.Transaction{}, err
	}
	go a.notifier.TransactionRecorded(context.Background(), tx)
	return tx, nil
}

// UpdateTransaction replaces an existing record.
func (a *App) UpdateTransaction(ctx context.Context, tx domain.Transaction) error {
	return a.ledger.UpdateTransaction(ctx, tx)
}

// DeleteTransactionsByIDs removes records by ID.
func (a *App) DeleteTransactionsByIDs(ctx context.Context, ids []string) error {
	return a.ledger.DeleteTransactionsByIDs(ctx, ids)
}

// Transactions returns the transactions visible to the session user:
// everything for privileged users, only their own otherwise.
func (a *App) Transactions() []domain.Transaction {
	all := a.ledger.Transactions()
	if a.user.Privileged {
		return all
	}
	visible := all[:0]
	for _, tx := range all {
		if a.user.Owns(tx) {
			visible = append(visible, tx)
		}
	}
	return visible
}

// Vault returns the current vault under the session user's scope.
func (a *App) Vault() domain.NoteCounts {
	return a.ledger.Vault()
}

// SyncStatus reports the user-visible sync indicator state.
func (a *App) SyncStatus() store.SyncState {
	return a.status.State()
}

// Ledger exposes the underlying engine for registry operations and clearing.
func (a *App) Ledger() *ledger.Ledger {
	return a.ledger
}

// Remote exposes the configured remote store, nil for local-only apps.
func (a *App) Remote() store.RemoteStore {
	return a.remote
}

// TestConnection probes the remote store.
func (a *App) TestConnection(ctx context.Context) bool {
	return a.reconciler.TestConnection(ctx)
}
