package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alienterprises/cashbook/internal/domain"
)

// AddTransaction validates and materializes a draft, inserts it into the
// transaction set, and updates the vault, all before any I/O. Persistence to
// the stores is scheduled in the background; the returned record is already
// authoritative in memory when this returns.
func (l *Ledger) AddTransaction(ctx context.Context, draft domain.Draft) (domain.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	date := draft.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	tx := domain.Transaction{
		ID:            fmt.Sprintf("txn_%s", uuid.NewString()),
		Date:          date,
		Type:          draft.Type,
		PaymentMethod: draft.PaymentMethod,
		Company:       draft.Company,
		Person:        draft.Person,
		Location:      draft.Location,
		RecordedBy:    draft.RecordedBy,
		Amount:        draft.Amount,
		Notes:         draft.Notes,
		Breakdown:     draft.Breakdown.Clone(),
	}
	if tx.IsCash() {
		// The engine, not the caller, owns the amount of a cash transaction.
		tx.Amount = tx.Breakdown.Amount()
	}

	l.mu.Lock()
	l.txs = append(l.txs, tx)
	domain.SortByDateDesc(l.txs)
	if l.scope.Includes(tx) {
		applyVaultDelta(l.vault, tx, apply)
	}
	l.mu.Unlock()

	l.log.Info().
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Str("payment_method", string(tx.PaymentMethod)).
		Float64("amount", tx.Amount).
		Msg("Transaction recorded")

	l.persistPut(tx, false)
	return tx, nil
}

// UpdateTransaction replaces the stored record with the given one (whole
// record, never a field merge). The vault is reconciled in a single step:
// the original's impact is reversed and the replacement's applied inside one
// critical section, so no intermediate vault is observable.
func (l *Ledger) UpdateTransaction(ctx context.Context, tx domain.Transaction) error {
	if err := domain.ValidateRecord(tx); err != nil {
		return err
	}

	l.mu.Lock()
	original, ok := l.find(tx.ID)
	if !ok {
		l.mu.Unlock()
		return fmt.Errorf("update %s: %w", tx.ID, domain.ErrNotFound)
	}

	for i := range l.txs {
		if l.txs[i].ID == tx.ID {
			l.txs[i] = tx
			break
		}
	}
	domain.SortByDateDesc(l.txs)

	if l.scope.Includes(original) {
		applyVaultDelta(l.vault, original, reverse)
	}
	if l.scope.Includes(tx) {
		applyVaultDelta(l.vault, tx, apply)
	}
	l.mu.Unlock()

	l.log.Info().Str("transaction_id", tx.ID).Msg("Transaction updated")

	l.persistPut(tx, true)
	return nil
}

// DeleteTransactionsByIDs removes the matching records and reverses their
// vault impact. IDs that do not exist are silently skipped. Store deletion
// is attempted per ID in the background; one failure does not stop the rest.
func (l *Ledger) DeleteTransactionsByIDs(ctx context.Context, ids []string) error {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	l.mu.Lock()
	var removed []domain.Transaction
	kept := l.txs[:0]
	for _, tx := range l.txs {
		if idSet[tx.ID] {
			removed = append(removed, tx)
			continue
		}
		kept = append(kept, tx)
	}
	l.txs = kept
	for _, tx := range removed {
		if l.scope.Includes(tx) {
			applyVaultDelta(l.vault, tx, reverse)
		}
	}
	l.mu.Unlock()

	if len(removed) == 0 {
		return nil
	}

	removedIDs := make([]string, len(removed))
	for i, tx := range removed {
		removedIDs[i] = tx.ID
	}
	l.log.Info().Strs("transaction_ids", removedIDs).Msg("Transactions deleted")

	l.persistDelete(removedIDs)
	return nil
}
