package domain_test

import (
	"testing"
	"time"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLoginAttempt_StateAt(t *testing.T) {
	const (
		maxAttempts = 5
		window      = 300 * time.Second
	)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		attempt *domain.LoginAttempt
		want    domain.AttemptState
	}{
		{
			name:    "nil record is clear",
			attempt: nil,
			want:    domain.AttemptClear,
		},
		{
			name: "below threshold is accumulating",
			attempt: &domain.LoginAttempt{
				Email:        "a@x.com",
				AttemptCount: 4,
				LastAttempt:  now.Add(-10 * time.Second),
			},
			want: domain.AttemptAccumulating,
		},
		{
			name: "at threshold within window is locked",
			attempt: &domain.LoginAttempt{
				Email:        "a@x.com",
				AttemptCount: 5,
				LastAttempt:  now.Add(-10 * time.Second),
			},
			want: domain.AttemptLocked,
		},
		{
			name: "above threshold within window is locked",
			attempt: &domain.LoginAttempt{
				Email:        "a@x.com",
				AttemptCount: 9,
				LastAttempt:  now.Add(-299 * time.Second),
			},
			want: domain.AttemptLocked,
		},
		{
			name: "exactly at window boundary is clear",
			attempt: &domain.LoginAttempt{
				Email:        "a@x.com",
				AttemptCount: 5,
				LastAttempt:  now.Add(-window),
			},
			want: domain.AttemptClear,
		},
		{
			name: "past window is clear regardless of count",
			attempt: &domain.LoginAttempt{
				Email:        "a@x.com",
				AttemptCount: 50,
				LastAttempt:  now.Add(-window - time.Second),
			},
			want: domain.AttemptClear,
		},
		{
			name: "stale accumulating record is clear",
			attempt: &domain.LoginAttempt{
				Email:        "a@x.com",
				AttemptCount: 2,
				LastAttempt:  now.Add(-time.Hour),
			},
			want: domain.AttemptClear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.attempt.StateAt(now, maxAttempts, window))
		})
	}
}
