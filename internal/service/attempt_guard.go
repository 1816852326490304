package service

import (
	"context"
	"time"

	"github.com/aviksec/notes-vault/internal/config"
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository"
)

// AttemptGuard throttles repeated failed logins per email. Keying on the
// email rather than the client IP means credential stuffing against one
// account is throttled without penalizing other users behind the same NAT.
type AttemptGuard struct {
	attempts    repository.LoginAttemptRepository
	maxAttempts int
	window      time.Duration
}

func NewAttemptGuard(attempts repository.LoginAttemptRepository, cfg *config.Config) *AttemptGuard {
	return &AttemptGuard{
		attempts:    attempts,
		maxAttempts: cfg.MaxLoginAttempts,
		window:      cfg.LoginLockout,
	}
}

// CheckAllowed reports whether a login attempt for email may proceed at
// the given instant. A record whose window has elapsed is deleted here,
// lazily; there is no background sweeper.
func (g *AttemptGuard) CheckAllowed(ctx context.Context, email string, now time.Time) (bool, error) {
	attempt, err := g.attempts.Get(ctx, email)
	if err != nil {
		return false, err
	}

	switch attempt.StateAt(now, g.maxAttempts, g.window) {
	case domain.AttemptLocked:
		return false, nil
	case domain.AttemptClear:
		if attempt != nil {
			if err := g.attempts.Clear(ctx, email); err != nil {
				return false, err
			}
		}
		return true, nil
	default:
		return true, nil
	}
}

func (g *AttemptGuard) RecordFailure(ctx context.Context, email string, now time.Time) error {
	return g.attempts.RecordFailure(ctx, email, now)
}

// RecordSuccess clears the record unconditionally, whatever state it is in.
func (g *AttemptGuard) RecordSuccess(ctx context.Context, email string) error {
	return g.attempts.Clear(ctx, email)
}
