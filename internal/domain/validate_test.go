package domain

import (
	"testing"
	"time"
)

func validCashDraft() Draft {
	return Draft{
		Type:          TypeCredit,
		PaymentMethod: PaymentCash,
		Location:      "Shop 1",
		RecordedBy:    "user-1",
		Breakdown:     NoteCounts{100: 3, 50: 1},
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr bool
	}{
		{
			name:   "valid cash draft",
			mutate: func(d *Draft) {},
		},
		{
			name: "valid upi draft",
			mutate: func(d *Draft) {
				d.PaymentMethod = PaymentUPI
				d.Breakdown = nil
				d.Amount = 350
			},
		},
		{
			name:    "missing location",
			mutate:  func(d *Draft) { d.Location = "" },
			wantErr: true,
		},
		{
			name:    "missing recordedBy",
			mutate:  func(d *Draft) { d.RecordedBy = "" },
			wantErr: true,
		},
		{
			name:    "unknown transaction type",
			mutate:  func(d *Draft) { d.Type = "transfer" },
			wantErr: true,
		},
		{
			name:    "unknown payment method",
			mutate:  func(d *Draft) { d.PaymentMethod = "cheque" },
			wantErr: true,
		},
		{
			name:    "denomination outside allowed set",
			mutate:  func(d *Draft) { d.Breakdown = NoteCounts{25: 4} },
			wantErr: true,
		},
		{
			name:    "negative note count",
			mutate:  func(d *Draft) { d.Breakdown = NoteCounts{100: -1} },
			wantErr: true,
		},
		{
			name:    "cash without breakdown",
			mutate:  func(d *Draft) { d.Breakdown = nil },
			wantErr: true,
		},
		{
			name: "upi with breakdown",
			mutate: func(d *Draft) {
				d.PaymentMethod = PaymentUPI
				d.Amount = 100
			},
			wantErr: true,
		},
		{
			name: "negative upi amount",
			mutate: func(d *Draft) {
				d.PaymentMethod = PaymentUPI
				d.Breakdown = nil
				d.Amount = -5
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validCashDraft()
			tt.mutate(&draft)

			err := draft.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidation(err) {
				t.Errorf("expected a ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestValidateRecordAmountConsistency(t *testing.T) {
	tx := Transaction{
		ID:            "txn-1",
		Date:          time.Now(),
		Type:          TypeCredit,
		PaymentMethod: PaymentCash,
		Location:      "Shop 1",
		RecordedBy:    "user-1",
		Amount:        350,
		Breakdown:     NoteCounts{100: 3, 50: 1},
	}
	if err := ValidateRecord(tx); err != nil {
		t.Fatalf("ValidateRecord() unexpected error: %v", err)
	}

	tx.Amount = 400
	if err := ValidateRecord(tx); err == nil {
		t.Fatal("expected error for amount/breakdown mismatch, got nil")
	}
}

func TestNoteCountsAmount(t *testing.T) {
	n := NoteCounts{100: 3, 50: 1}
	if got := n.Amount(); got != 350 {
		t.Errorf("Amount() = %v, want 350", got)
	}
}

func TestScopeIncludes(t *testing.T) {
	tx := Transaction{RecordedBy: "user-1"}

	if !ScopeAll().Includes(tx) {
		t.Error("ScopeAll must include every transaction")
	}
	if !ScopeUser("user-1").Includes(tx) {
		t.Error("ScopeUser must include the user's own transaction")
	}
	if ScopeUser("user-2").Includes(tx) {
		t.Error("ScopeUser must exclude other users' transactions")
	}
}

func TestMatchesLegacyName(t *testing.T) {
	if !MatchesLegacyName("Ali@gmail.com", "ali") {
		t.Error("expected legacy match after stripping @gmail.com and case")
	}
	if MatchesLegacyName("ali", "bilal") {
		t.Error("expected no match for different names")
	}
}
