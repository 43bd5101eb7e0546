package middleware

import (
	"sync"
	"time"
)

// Failed-login lockout, in-memory per instance. After maxFailures wrong
// passwords the account is locked for lockoutPeriod.
const (
	maxFailures   = 5
	lockoutPeriod = 15 * time.Minute
)

type loginAttempts struct {
	failures int
	lockedAt time.Time
}

var (
	lockoutMu    sync.Mutex
	lockoutState = make(map[uint]*loginAttempts)
)

// RecordFailedLogin bumps the failure counter for a user and starts the
// lockout window when the limit is hit.
func RecordFailedLogin(userID uint) {
	lockoutMu.Lock()
	defer lockoutMu.Unlock()
	a := lockoutState[userID]
	if a == nil {
		a = &loginAttempts{}
		lockoutState[userID] = a
	}
	a.failures++
	if a.failures >= maxFailures {
		a.lockedAt = time.Now()
	}
}

// ResetFailedLogin clears the counter after a successful login.
func ResetFailedLogin(userID uint) {
	lockoutMu.Lock()
	defer lockoutMu.Unlock()
	delete(lockoutState, userID)
}

// IsAccountLocked reports whether the account is locked and how long until
// it unlocks.
func IsAccountLocked(userID uint) (bool, time.Duration) {
	lockoutMu.Lock()
	defer lockoutMu.Unlock()
	a := lockoutState[userID]
	if a == nil || a.failures < maxFailures {
		return false, 0
	}
	elapsed := time.Since(a.lockedAt)
	if elapsed >= lockoutPeriod {
		delete(lockoutState, userID)
		return false, 0
	}
	return true, lockoutPeriod - elapsed
}
