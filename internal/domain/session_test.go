package domain_test

import (
	"testing"
	"time"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSession_IdleExpiredAt(t *testing.T) {
	const timeout = 1800 * time.Second
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		lastActivity time.Time
		want         bool
	}{
		{
			name:         "fresh session",
			lastActivity: now,
			want:         false,
		},
		{
			name:         "one second before timeout",
			lastActivity: now.Add(-timeout + time.Second),
			want:         false,
		},
		{
			name:         "exactly at timeout is still valid",
			lastActivity: now.Add(-timeout),
			want:         false,
		},
		{
			name:         "one second past timeout",
			lastActivity: now.Add(-timeout - time.Second),
			want:         true,
		},
		{
			name:         "long idle",
			lastActivity: now.Add(-24 * time.Hour),
			want:         true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &domain.Session{LastActivity: tt.lastActivity}
			assert.Equal(t, tt.want, session.IdleExpiredAt(now, timeout))
		})
	}
}

func TestValidTheme(t *testing.T) {
	assert.True(t, domain.ValidTheme(domain.ThemeLight))
	assert.True(t, domain.ValidTheme(domain.ThemeDark))
	assert.False(t, domain.ValidTheme("solarized"))
	assert.False(t, domain.ValidTheme(""))
}
