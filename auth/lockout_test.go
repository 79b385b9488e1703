package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockoutThreshold(t *testing.T) {
	tracker := NewLockoutTracker(3, 15*time.Minute)
	now := time.Now()

	assert.False(t, tracker.RecordFailure("bob", now))
	assert.False(t, tracker.RecordFailure("bob", now))
	assert.True(t, tracker.RecordFailure("bob", now))
	assert.True(t, tracker.IsLocked("bob", now))

	// counter keeps going; lockout timestamp stays at the third failure
	assert.True(t, tracker.RecordFailure("bob", now.Add(time.Minute)))
	assert.Equal(t, 4, tracker.Attempts("bob"))
}

func TestLockoutExpiresLazily(t *testing.T) {
	tracker := NewLockoutTracker(3, 15*time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		tracker.RecordFailure("bob", now)
	}
	assert.True(t, tracker.IsLocked("bob", now.Add(14*time.Minute)))

	// attempts and lockout clear together on expiry
	assert.False(t, tracker.IsLocked("bob", now.Add(16*time.Minute)))
	assert.Equal(t, 0, tracker.Attempts("bob"))
}

func TestLockoutClearOnSuccess(t *testing.T) {
	tracker := NewLockoutTracker(3, 15*time.Minute)
	now := time.Now()

	tracker.RecordFailure("bob", now)
	tracker.RecordFailure("bob", now)
	tracker.Clear("bob")
	assert.Equal(t, 0, tracker.Attempts("bob"))
	assert.False(t, tracker.IsLocked("bob", now))
}

func TestLockoutTracksUsernamesIndependently(t *testing.T) {
	tracker := NewLockoutTracker(3, 15*time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		tracker.RecordFailure("bob", now)
	}
	assert.True(t, tracker.IsLocked("bob", now))
	assert.False(t, tracker.IsLocked("alice", now))
}
