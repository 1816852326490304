package domain

import "time"

// AttemptState is the lockout state machine position for one email.
// There is no background sweeper: a record moves back to Clear lazily,
// the next time it is checked after the window has elapsed.
type AttemptState int

const (
	// AttemptClear means no record exists (or one is due for deletion).
	AttemptClear AttemptState = iota
	// AttemptAccumulating means failures are being counted but the
	// threshold has not been reached.
	AttemptAccumulating
	// AttemptLocked means logins for this email are refused.
	AttemptLocked
)

// LoginAttempt counts consecutive failed logins for a single email.
// Created on the first failure, incremented on each subsequent one, and
// deleted on success or once the lockout window elapses.
type LoginAttempt struct {
	Email        string    `json:"email" gorm:"primaryKey"`
	AttemptCount int       `json:"attemptCount" gorm:"not null"`
	LastAttempt  time.Time `json:"lastAttempt" gorm:"not null"`
}

// StateAt evaluates the record purely against the given instant. A nil
// record is Clear. At exactly elapsed == window the record is treated as
// expired, so the attempt is allowed.
func (a *LoginAttempt) StateAt(now time.Time, maxAttempts int, window time.Duration) AttemptState {
	if a == nil {
		return AttemptClear
	}
	if now.Sub(a.LastAttempt) >= window {
		return AttemptClear
	}
	if a.AttemptCount >= maxAttempts {
		return AttemptLocked
	}
	return AttemptAccumulating
}
