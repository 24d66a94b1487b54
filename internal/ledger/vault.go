package ledger

import "github.com/alienterprises/cashbook/internal/domain"

// direction selects whether a transaction's vault impact is being applied or
// reversed. Add applies, delete reverses, update does one of each. Keeping
// the sign logic in one place avoids the add/update asymmetry class of bug.
type direction int

const (
	apply   direction = 1
	reverse direction = -1
)

// applyVaultDelta folds one transaction's breakdown into the vault. Non-cash
// transactions and denominations outside the allowed set contribute nothing.
func applyVaultDelta(vault domain.NoteCounts, tx domain.Transaction, dir direction) {
	if !tx.IsCash() {
		return
	}
	for denom, count := range tx.Breakdown {
		if !domain.ValidDenomination(denom) {
			continue
		}
		vault[denom] += int(dir) * tx.Type.Sign() * count
	}
}

// RecalculateVault folds the given transactions into a fresh vault,
// restricted to the transactions visible under scope. It is a pure
// summation: idempotent, and independent of the input order. The engine's
// incrementally maintained vault must always equal this function applied to
// its current transaction set.
func RecalculateVault(txs []domain.Transaction, scope domain.Scope) domain.NoteCounts {
	vault := domain.NewVault()
	for _, tx := range txs {
		if !scope.Includes(tx) {
			continue
		}
		applyVaultDelta(vault, tx, apply)
	}
	return vault
}
