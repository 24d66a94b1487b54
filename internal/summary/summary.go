// Package summary computes the aggregate views over a transaction list:
// per-company-per-location balances, person-wise udhar (informal credit),
// and overall totals. All functions are pure folds over the given slice.
package summary

import (
	"sort"
	"strings"

	"github.com/alienterprises/cashbook/internal/domain"
)

// CompanySummary is one company's balance at one location.
type CompanySummary struct {
	DisplayName      string
	CompanyName      string
	Location         string
	TotalCredit      float64
	TotalDebit       float64
	NetBalance       float64
	TransactionCount int
}

// ByCompany groups the transactions at the given location by company.
// Transactions with an NA (or absent) company are excluded: they carry no
// company balance. Results are sorted by display name.
func ByCompany(txs []domain.Transaction, location string) []CompanySummary {
	byKey := make(map[string]*CompanySummary)
	for _, tx := range txs {
		if tx.Location != location {
			continue
		}
		company := tx.CompanyOrNA()
		if company == domain.NotApplicable {
			continue
		}

		key := company + " " + tx.Location
		s, ok := byKey[key]
		if !ok {
			s = &CompanySummary{
				DisplayName: key,
				CompanyName: company,
				Location:    tx.Location,
			}
			byKey[key] = s
		}
		if tx.Type == domain.TypeCredit {
			s.TotalCredit += tx.Amount
		} else {
			s.TotalDebit += tx.Amount
		}
		s.TransactionCount++
	}

	out := make([]CompanySummary, 0, len(byKey))
	for _, s := range byKey {
		s.NetBalance = s.TotalCredit - s.TotalDebit
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

// PersonBalance is one person's udhar position.
type PersonBalance struct {
	Person           string
	TotalCredit      float64
	TotalDebit       float64
	NetBalance       float64
	TransactionCount int
}

// PersonUdhar aggregates the personal-credit transactions: those recorded
// with both company and location set to NA, grouped by person
// (case-insensitive). Results are sorted by person name.
func PersonUdhar(txs []domain.Transaction) []PersonBalance {
	byPerson := make(map[string]*PersonBalance)
	for _, tx := range txs {
		if tx.CompanyOrNA() != domain.NotApplicable || tx.Location != domain.NotApplicable {
			continue
		}
		if tx.Person == "" {
			continue
		}

		key := strings.ToUpper(tx.Person)
		b, ok := byPerson[key]
		if !ok {
			b = &PersonBalance{Person: key}
			byPerson[key] = b
		}
		if tx.Type == domain.TypeCredit {
			b.TotalCredit += tx.Amount
		} else {
			b.TotalDebit += tx.Amount
		}
		b.TransactionCount++
	}

	out := make([]PersonBalance, 0, len(byPerson))
	for _, b := range byPerson {
		b.NetBalance = b.TotalCredit - b.TotalDebit
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Person < out[j].Person })
	return out
}

// Totals is the overall position across a transaction list.
type Totals struct {
	TotalCredit float64
	TotalDebit  float64
	Net         float64
	CashCredit  float64
	CashDebit   float64
	UPICredit   float64
	UPIDebit    float64
	Count       int
}

// Overall folds the whole list into totals, split by payment method.
func Overall(txs []domain.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		t.Count++
		credit := tx.Type == domain.TypeCredit
		if credit {
			t.TotalCredit += tx.Amount
		} else {
			t.TotalDebit += tx.Amount
		}
		switch {
		case tx.IsCash() && credit:
			t.CashCredit += tx.Amount
		case tx.IsCash():
			t.CashDebit += tx.Amount
		case credit:
			t.UPICredit += tx.Amount
		default:
			t.UPIDebit += tx.Amount
		}
	}
	t.Net = t.TotalCredit - t.TotalDebit
	return t
}
