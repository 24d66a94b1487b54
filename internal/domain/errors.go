package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an update or delete references an ID that
	// does not exist. Deletes tolerate it per ID; updates reject it.
	ErrNotFound = errors.New("transaction not found")

	// ErrStoreUnavailable marks a local persistence failure. In-memory state
	// is never rolled back because of it.
	ErrStoreUnavailable = errors.New("local store unavailable")

	// ErrRemoteUnreachable marks a failed connection to the remote ledger.
	ErrRemoteUnreachable = errors.New("remote store unreachable")

	// ErrCorruptState marks malformed data found in the local store on load.
	// The whole persisted set is discarded rather than partially recovered.
	ErrCorruptState = errors.New("corrupt persisted state")
)

// ValidationError reports a draft that cannot be recorded. It is surfaced
// synchronously and no state is mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
