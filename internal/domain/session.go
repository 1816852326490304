package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record behind the opaque token a client holds.
// The CSRF token is generated once at creation and lives as long as the
// session does.
type Session struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Token        string    `json:"-" gorm:"uniqueIndex;not null"`
	UserID       uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	IssuedAt     time.Time `json:"issuedAt" gorm:"not null"`
	LastActivity time.Time `json:"lastActivity" gorm:"not null"`
	CSRFToken    string    `json:"-" gorm:"not null"`
	Theme        string    `json:"theme" gorm:"not null;default:light"`
}

// IdleExpiredAt reports whether the session's sliding idle window has run
// out at the given instant. Exactly at the timeout the session is still
// valid; only elapsed > timeout expires it.
func (s *Session) IdleExpiredAt(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}
