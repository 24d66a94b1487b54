package domain

import (
	"sort"
	"time"
)

// TransactionType determines the sign of a transaction's impact on the vault
// and on summary totals.
type TransactionType string

const (
	// TypeCredit represents money received.
	TypeCredit TransactionType = "credit"
	// TypeDebit represents money paid out.
	TypeDebit TransactionType = "debit"
)

// Sign returns +1 for credits and -1 for debits.
func (t TransactionType) Sign() int {
	if t == TypeDebit {
		return -1
	}
	return 1
}

// PaymentMethod identifies how a transaction was settled. Only cash
// transactions carry a denomination breakdown and touch the vault.
type PaymentMethod string

const (
	// PaymentCash is a physical cash transaction with a note breakdown.
	PaymentCash PaymentMethod = "cash"
	// PaymentUPI is a digital UPI transaction.
	PaymentUPI PaymentMethod = "upi"
)

// NotApplicable is the sentinel for "not applicable" classification values.
// It is distinct from an absent value: filters and summaries treat an empty
// company as NA, but a transaction explicitly tagged NA stays NA.
const NotApplicable = "NA"

// Transaction is an immutable-after-creation record of one money movement.
// The ID is assigned by the ledger engine at creation time and is the sole
// identity key for merge and dedup across stores.
type Transaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Company       string          `json:"company,omitempty"`
	Person        string          `json:"person,omitempty"`
	Location      string          `json:"location"`
	RecordedBy    string          `json:"recordedBy"`
	Amount        float64         `json:"amount"`
	Notes         string          `json:"notes,omitempty"`
	Breakdown     NoteCounts      `json:"breakdown,omitempty"`
}

// IsCash reports whether the transaction participates in vault bookkeeping.
func (t Transaction) IsCash() bool {
	return t.PaymentMethod == PaymentCash
}

// CompanyOrNA returns the company name, mapping an absent value to NA the way
// every history and summary view groups transactions.
func (t Transaction) CompanyOrNA() string {
	if t.Company == "" {
		return NotApplicable
	}
	return t.Company
}

// Draft is the caller-supplied input for a new transaction. It has no ID,
// and a zero Date means "now". For cash drafts the engine derives Amount
// from the breakdown; the caller's Amount is only meaningful for UPI.
type Draft struct {
	Date          time.Time
	Type          TransactionType
	PaymentMethod PaymentMethod
	Company       string
	Person        string
	Location      string
	RecordedBy    string
	Amount        float64
	Notes         string
	Breakdown     NoteCounts
}

// SortByDateDesc sorts transactions newest first, in place. Every listing
// surface shows transactions in this order. Ties fall back to ID so the
// order is stable across runs.
func SortByDateDesc(txs []Transaction) {
	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].ID < txs[j].ID
	})
}
