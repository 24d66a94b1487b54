package store

import (
	"sync"
	"time"
)

// SyncState is the user-visible sync indicator state.
type SyncState int32

const (
	// StateIdle means no sync activity.
	StateIdle SyncState = iota
	// StateSyncing means a sync or background persistence is in flight.
	StateSyncing
	// StateSuccess means the last operation completed.
	StateSuccess
	// StateError means the last operation failed.
	StateError
)

func (s SyncState) String() string {
	switch s {
	case StateSyncing:
		return "syncing"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// DefaultStatusReset is how long a terminal state is shown before the
// tracker returns to idle.
const DefaultStatusReset = 3 * time.Second

// StatusTracker drives the sync indicator state machine
// idle -> syncing -> {success, error} -> idle. Terminal states auto-reset
// after a short delay. Safe for concurrent use.
type StatusTracker struct {
	mu         sync.Mutex
	state      SyncState
	resetAfter time.Duration
	resetTimer *time.Timer
}

// NewStatusTracker returns a tracker in the idle state. A non-positive
// resetAfter uses DefaultStatusReset.
func NewStatusTracker(resetAfter time.Duration) *StatusTracker {
	if resetAfter <= 0 {
		resetAfter = DefaultStatusReset
	}
	return &StatusTracker{resetAfter: resetAfter}
}

// State returns the current indicator state.
func (t *StatusTracker) State() SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Set moves the tracker to the given state. Success and error schedule an
// automatic reset to idle; any newer Set cancels a pending reset.
func (t *StatusTracker) Set(s SyncState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.resetTimer != nil {
		t.resetTimer.Stop()
		t.resetTimer = nil
	}
	t.state = s

	if s == StateSuccess || s == StateError {
		t.resetTimer = time.AfterFunc(t.resetAfter, func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			// Only reset if no newer state arrived meanwhile.
			if t.state == s {
				t.state = StateIdle
			}
			t.resetTimer = nil
		})
	}
}
