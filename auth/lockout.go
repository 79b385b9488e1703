package auth

import (
	"sync"
	"time"
)

type lockoutRecord struct {
	attempts int
	lockedAt time.Time
	locked   bool
}

// LockoutTracker counts consecutive failed logins per normalized username
// and locks an account once the threshold is reached. Expiry is checked
// lazily on the next lookup; there is no background sweeper.
type LockoutTracker struct {
	mu          sync.Mutex
	records     map[string]*lockoutRecord
	maxAttempts int
	duration    time.Duration
}

func NewLockoutTracker(maxAttempts int, duration time.Duration) *LockoutTracker {
	return &LockoutTracker{
		records:     make(map[string]*lockoutRecord),
		maxAttempts: maxAttempts,
		duration:    duration,
	}
}

// IsLocked reports whether the account is locked at the given instant.
// An expired lockout clears the record entirely, attempts included.
func (t *LockoutTracker) IsLocked(username string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[username]
	if !ok || !rec.locked {
		return false
	}
	if now.Before(rec.lockedAt.Add(t.duration)) {
		return true
	}
	delete(t.records, username)
	return false
}

// RecordFailure increments the counter and reports whether the account is
// now locked. Increment-and-check runs under the mutex so concurrent
// failures cannot slip past the threshold.
func (t *LockoutTracker) RecordFailure(username string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[username]
	if !ok {
		rec = &lockoutRecord{}
		t.records[username] = rec
	}
	rec.attempts++
	if rec.attempts >= t.maxAttempts && !rec.locked {
		rec.locked = true
		rec.lockedAt = now
	}
	return rec.locked
}

// Clear removes the record after a successful login.
func (t *LockoutTracker) Clear(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, username)
}

// Attempts returns the current failure count, mainly for tests and logging.
func (t *LockoutTracker) Attempts(username string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if rec, ok := t.records[username]; ok {
		return rec.attempts
	}
	return 0
}
