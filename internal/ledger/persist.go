package ledger

import (
	"context"

	"github.com/alienterprises/cashbook/internal/domain"
	"github.com/alienterprises/cashbook/internal/store"
)

// persistPut saves a transaction to the local store and, when connected,
// mirrors it to the remote store. Fire-and-forget relative to the mutation:
// the in-memory state is already updated and is never rolled back on
// persistence failure.
func (l *Ledger) persistPut(tx domain.Transaction, isUpdate bool) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := l.local.Put(ctx, tx); err != nil {
			l.log.Warn().Err(err).Str("transaction_id", tx.ID).Msg("Failed to persist transaction locally")
			l.status.Set(store.StateError)
		}

		if l.remote == nil || !l.RemoteConnected() {
			return
		}

		l.status.Set(store.StateSyncing)
		var (
			outcome store.Outcome
			err     error
		)
		if isUpdate {
			outcome, err = l.remote.Update(ctx, tx)
		} else {
			outcome, err = l.remote.Add(ctx, tx)
		}

		switch {
		case err != nil || outcome == store.OutcomeFailed:
			l.log.Warn().Err(err).Str("transaction_id", tx.ID).Msg("Failed to sync transaction to remote store")
			l.status.Set(store.StateError)
		case outcome == store.OutcomeUnknown:
			// Not assumed success: the next reconcile pass settles it.
			l.log.Warn().Str("transaction_id", tx.ID).Msg("Remote sync outcome unknown, pending reconciliation")
			l.status.Set(store.StateError)
		default:
			l.status.Set(store.StateSuccess)
		}
	}()
}

// persistDelete removes transactions from both stores, attempted per ID so a
// failure on one does not prevent the others.
func (l *Ledger) persistDelete(ids []string) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		failed := false
		for _, id := range ids {
			if err := l.local.Delete(ctx, id); err != nil {
				l.log.Warn().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction locally")
				failed = true
			}
		}

		if l.remote != nil && l.RemoteConnected() {
			l.status.Set(store.StateSyncing)
			for _, id := range ids {
				outcome, err := l.remote.Delete(ctx, id)
				if err != nil || outcome != store.OutcomeOK {
					l.log.Warn().Err(err).
						Str("transaction_id", id).
						Str("outcome", outcome.String()).
						Msg("Failed to delete transaction from remote store")
					failed = true
				}
			}
		}

		if failed {
			l.status.Set(store.StateError)
		} else if l.remote != nil && l.RemoteConnected() {
			l.status.Set(store.StateSuccess)
		}
	}()
}
