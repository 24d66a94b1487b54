package summary

import (
	"testing"

	"github.com/alienterprises/cashbook/internal/domain"
)

func mk(company, person, location string, txType domain.TransactionType, amount float64) domain.Transaction {
	return domain.Transaction{
		Company:       company,
		Person:        person,
		Location:      location,
		Type:          txType,
		PaymentMethod: domain.PaymentUPI,
		RecordedBy:    "user-1",
		Amount:        amount,
	}
}

func TestByCompany(t *testing.T) {
	txs := []domain.Transaction{
		mk("Ali Textiles", "", "Shop 1", domain.TypeCredit, 1000),
		mk("Ali Textiles", "", "Shop 1", domain.TypeDebit, 300),
		mk("Sharma Traders", "", "Shop 1", domain.TypeCredit, 500),
		mk("Ali Textiles", "", "Shop 2", domain.TypeCredit, 9999), // other location
		mk(domain.NotApplicable, "", "Shop 1", domain.TypeCredit, 50),
		mk("", "", "Shop 1", domain.TypeCredit, 75), // absent company == NA
	}

	got := ByCompany(txs, "Shop 1")
	if len(got) != 2 {
		t.Fatalf("ByCompany() returned %d groups, want 2: %+v", len(got), got)
	}

	// Sorted by display name: "Ali Textiles Shop 1" before "Sharma Traders Shop 1".
	ali := got[0]
	if ali.CompanyName != "Ali Textiles" || ali.TotalCredit != 1000 || ali.TotalDebit != 300 || ali.NetBalance != 700 || ali.TransactionCount != 2 {
		t.Errorf("Ali Textiles summary = %+v", ali)
	}
	if got[1].CompanyName != "Sharma Traders" || got[1].NetBalance != 500 {
		t.Errorf("Sharma Traders summary = %+v", got[1])
	}
}

func TestPersonUdhar(t *testing.T) {
	na := domain.NotApplicable
	txs := []domain.Transaction{
		mk(na, "Ravi", na, domain.TypeCredit, 2000),
		mk(na, "ravi", na, domain.TypeDebit, 500), // same person, different case
		mk(na, "Sita", na, domain.TypeDebit, 800),
		mk("Ali Textiles", "Ravi", "Shop 1", domain.TypeCredit, 123), // not udhar
		mk(na, "", na, domain.TypeCredit, 50),                       // no person
	}

	got := PersonUdhar(txs)
	if len(got) != 2 {
		t.Fatalf("PersonUdhar() returned %d people, want 2: %+v", len(got), got)
	}
	if got[0].Person != "RAVI" || got[0].NetBalance != 1500 || got[0].TransactionCount != 2 {
		t.Errorf("RAVI balance = %+v", got[0])
	}
	if got[1].Person != "SITA" || got[1].NetBalance != -800 {
		t.Errorf("SITA balance = %+v", got[1])
	}
}

func TestOverall(t *testing.T) {
	txs := []domain.Transaction{
		{Type: domain.TypeCredit, PaymentMethod: domain.PaymentCash, Amount: 350},
		{Type: domain.TypeDebit, PaymentMethod: domain.PaymentCash, Amount: 100},
		{Type: domain.TypeCredit, PaymentMethod: domain.PaymentUPI, Amount: 900},
	}

	got := Overall(txs)
	if got.TotalCredit != 1250 || got.TotalDebit != 100 || got.Net != 1150 {
		t.Errorf("totals = %+v", got)
	}
	if got.CashCredit != 350 || got.CashDebit != 100 || got.UPICredit != 900 || got.UPIDebit != 0 {
		t.Errorf("method split = %+v", got)
	}
	if got.Count != 3 {
		t.Errorf("count = %d, want 3", got.Count)
	}
}
