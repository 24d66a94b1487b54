package ledger

import (
	"context"
	"sort"
)

// Companies returns the known company names, sorted. The registry only
// feeds pick-lists; Transaction.Company is never validated against it.
func (l *Ledger) Companies() []string {
	l.companiesMu.RLock()
	defer l.companiesMu.RUnlock()
	out := make([]string, len(l.companies))
	copy(out, l.companies)
	return out
}

// AddCompany adds a name to the registry. Adding an existing name is a no-op.
func (l *Ledger) AddCompany(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}

	l.companiesMu.Lock()
	for _, existing := range l.companies {
		if existing == name {
			l.companiesMu.Unlock()
			return nil
		}
	}
	l.companies = append(l.companies, name)
	sort.Strings(l.companies)
	names := make([]string, len(l.companies))
	copy(names, l.companies)
	l.companiesMu.Unlock()

	return l.saveCompanies(ctx, names)
}

// DeleteCompany removes a name from the registry.
func (l *Ledger) DeleteCompany(ctx context.Context, name string) error {
	l.companiesMu.Lock()
	kept := l.companies[:0]
	for _, existing := range l.companies {
		if existing != name {
			kept = append(kept, existing)
		}
	}
	l.companies = kept
	names := make([]string, len(l.companies))
	copy(names, l.companies)
	l.companiesMu.Unlock()

	return l.saveCompanies(ctx, names)
}

func (l *Ledger) saveCompanies(ctx context.Context, names []string) error {
	if l.registry == nil {
		return nil
	}
	if err := l.registry.SaveCompanies(ctx, names); err != nil {
		l.log.Warn().Err(err).Msg("Failed to persist company registry")
		return err
	}
	return nil
}
