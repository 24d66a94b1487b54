// Package sheetsync reconciles the locally cached transaction set with the
// remote spreadsheet ledger. One policy, applied consistently: the remote is
// the authoritative base on ID collisions, and locally recorded transactions
// absent from the remote are preserved and best-effort uploaded. A local
// record is never silently dropped from the user's view.
package sheetsync

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/ledger"
	"github.com/alienterprises/cashbook/internal/store"
)

// ErrSyncInFlight is returned when Reconcile is called while another run is
// still in progress. Requests are rejected, not queued.
var ErrSyncInFlight = errors.New("sync already in flight")

// defaultTimeout bounds a whole reconciliation run.
const defaultTimeout = 2 * time.Minute

// Result is the outcome of one reconciliation pass.
type Result struct {
	// Final is the merged, descending-date transaction set that is now
	// authoritative.
	Final []domain.Transaction

	// Vault is recomputed from Final under the reconciler's scope.
	Vault domain.NoteCounts

	// RemoteAvailable reports whether the remote participated or the run
	// fell back to local-only.
	RemoteAvailable bool

	// Uploaded, UploadFailed, and UploadUnknown hold the IDs of local-only
	// records by upload outcome. Failed and unknown records remain in Final;
	// the next pass retries them.
	Uploaded      []string
	UploadFailed  []string
	UploadUnknown []string
}

// Reconciler merges the local and remote transaction sets.
type Reconciler struct {
	local   store.LocalStore
	remote  store.RemoteStore // nil means permanently offline
	status  *store.StatusTracker
	scope   domain.Scope
	timeout time.Duration
	log     zerolog.Logger

	inFlight atomic.Bool
}

// New creates a reconciler. remote may be nil, in which case every run takes
// the offline branch.
func New(local store.LocalStore, remote store.RemoteStore, status *store.StatusTracker, scope domain.Scope, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		local:   local,
		remote:  remote,
		status:  status,
		scope:   scope,
		timeout: defaultTimeout,
		log:     log,
	}
}

// SetTimeout overrides the per-run deadline. Non-positive values keep the
// current one.
func (r *Reconciler) SetTimeout(d time.Duration) {
	if d > 0 {
		r.timeout = d
	}
}

// TestConnection probes the remote store.
func (r *Reconciler) TestConnection(ctx context.Context) bool {
	return r.remote != nil && r.remote.TestConnection(ctx)
}

// Reconcile merges localTxs with the remote set and returns the winning set
// and recomputed vault. On any remote failure after the probe, the previous
// in-memory state is left untouched (the error return carries no partial
// result). The local store is overwritten with the merged set on success.
func (r *Reconciler) Reconcile(ctx context.Context, localTxs []domain.Transaction) (*Result, error) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSyncInFlight
	}
	defer r.inFlight.Store(false)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.status.Set(store.StateSyncing)
	r.log.Info().Int("local_count", len(localTxs)).Msg("Starting reconciliation")

	if !r.TestConnection(ctx) {
		// Offline: local is all there is.
		final := make([]domain.Transaction, len(localTxs))
		copy(final, localTxs)
		domain.SortByDateDesc(final)

		r.status.Set(store.StateError)
		r.log.Warn().Msg("Remote store unreachable, operating on local transactions only")
		return &Result{
			Final:           final,
			Vault:           ledger.RecalculateVault(final, r.scope),
			RemoteAvailable: false,
		}, nil
	}

	remoteTxs, err := r.remote.GetAll(ctx)
	if err != nil {
		r.status.Set(store.StateError)
		return nil, fmt.Errorf("fetch remote transactions: %w", err)
	}
	r.log.Info().Int("remote_count", len(remoteTxs)).Msg("Fetched remote transactions")

	// Remote is the authoritative base; on an ID collision the remote copy
	// wins unconditionally.
	remoteByID := make(map[string]bool, len(remoteTxs))
	for _, tx := range remoteTxs {
		remoteByID[tx.ID] = true
	}

	final := make([]domain.Transaction, len(remoteTxs))
	copy(final, remoteTxs)

	result := &Result{RemoteAvailable: true}
	for _, local := range localTxs {
		if remoteByID[local.ID] {
			continue
		}
		// Local-only record: keep it in the merged set no matter how the
		// upload goes.
		final = append(final, local)

		outcome, err := r.remote.Add(ctx, local)
		switch {
		case err == nil && outcome == store.OutcomeOK:
			result.Uploaded = append(result.Uploaded, local.ID)
			r.log.Info().Str("transaction_id", local.ID).Msg("Uploaded local-only transaction")
		case outcome == store.OutcomeUnknown:
			result.UploadUnknown = append(result.UploadUnknown, local.ID)
			r.log.Warn().Err(err).Str("transaction_id", local.ID).Msg("Upload outcome unknown, will retry next pass")
		default:
			result.UploadFailed = append(result.UploadFailed, local.ID)
			r.log.Warn().Err(err).Str("transaction_id", local.ID).Msg("Failed to upload local-only transaction, kept locally")
		}
	}

	domain.SortByDateDesc(final)

	// The local store becomes a cache of the merged truth.
	if err := r.local.ClearAndRepopulate(ctx, final); err != nil {
		// Memory stays authoritative; the cache catches up on the next write.
		r.log.Warn().Err(err).Msg("Failed to repopulate local store after merge")
	}

	result.Final = final
	result.Vault = ledger.RecalculateVault(final, r.scope)

	r.status.Set(store.StateSuccess)
	r.log.Info().
		Int("final_count", len(final)).
		Int("uploaded", len(result.Uploaded)).
		Int("upload_failed", len(result.UploadFailed)).
		Int("upload_unknown", len(result.UploadUnknown)).
		Msg("Reconciliation completed")
	return result, nil
}
