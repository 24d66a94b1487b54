package domain

import "fmt"

// Validate checks a draft before the engine materializes it. Unknown
// denominations are rejected outright, not silently dropped: dropping would
// desynchronize the derived amount from what the user entered.
func (d Draft) Validate() error {
	switch d.Type {
	case TypeCredit, TypeDebit:
	default:
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown transaction type %q", d.Type)}
	}

	switch d.PaymentMethod {
	case PaymentCash, PaymentUPI:
	default:
		return &ValidationError{Field: "paymentMethod", Reason: fmt.Sprintf("unknown payment method %q", d.PaymentMethod)}
	}

	if d.Location == "" {
		return &ValidationError{Field: "location", Reason: "location is required"}
	}
	if d.RecordedBy == "" {
		return &ValidationError{Field: "recordedBy", Reason: "recordedBy is required"}
	}

	if d.PaymentMethod == PaymentCash {
		if len(d.Breakdown) == 0 {
			return &ValidationError{Field: "breakdown", Reason: "cash transaction requires a note breakdown"}
		}
		for denom, count := range d.Breakdown {
			if !ValidDenomination(denom) {
				return &ValidationError{Field: "breakdown", Reason: fmt.Sprintf("denomination %d is not an accepted note", denom)}
			}
			if count < 0 {
				return &ValidationError{Field: "breakdown", Reason: fmt.Sprintf("negative note count %d for denomination %d", count, denom)}
			}
		}
		return nil
	}

	// Non-cash drafts carry the amount directly and must not carry notes.
	if d.Amount < 0 {
		return &ValidationError{Field: "amount", Reason: "amount must not be negative"}
	}
	if len(d.Breakdown) > 0 {
		return &ValidationError{Field: "breakdown", Reason: "breakdown only applies to cash transactions"}
	}
	return nil
}

// ValidateRecord checks a complete transaction, as fetched from a store or
// submitted for update. It applies the same rules as Validate plus the
// amount/breakdown consistency invariant for cash records.
func ValidateRecord(tx Transaction) error {
	if tx.ID == "" {
		return &ValidationError{Field: "id", Reason: "id is required"}
	}
	draft := Draft{
		Date:          tx.Date,
		Type:          tx.Type,
		PaymentMethod: tx.PaymentMethod,
		Company:       tx.Company,
		Person:        tx.Person,
		Location:      tx.Location,
		RecordedBy:    tx.RecordedBy,
		Amount:        tx.Amount,
		Notes:         tx.Notes,
		Breakdown:     tx.Breakdown,
	}
	if err := draft.Validate(); err != nil {
		return err
	}
	if tx.IsCash() && tx.Amount != tx.Breakdown.Amount() {
		return &ValidationError{Field: "amount", Reason: "amount does not match breakdown total"}
	}
	return nil
}
