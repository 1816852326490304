package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/aviksec/notes-vault/internal/config"
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 32 random bytes, well past the 128-bit floor for unguessable tokens.
const sessionTokenBytes = 32

// SessionService owns the session lifecycle: creation on login, sliding
// idle expiry on every authorized request, destruction on logout.
type SessionService struct {
	sessions repository.SessionRepository
	timeout  time.Duration
}

func NewSessionService(sessions repository.SessionRepository, cfg *config.Config) *SessionService {
	return &SessionService{
		sessions: sessions,
		timeout:  cfg.SessionTimeout,
	}
}

// Create issues a fresh session for the user. Any sessions the user
// already holds are dropped first so a pre-set identifier can never
// survive login (session fixation).
func (s *SessionService) Create(ctx context.Context, user *domain.User, now time.Time) (*domain.Session, error) {
	token, err := GenerateToken()
	if err != nil {
		return nil, err
	}
	csrfToken, err := GenerateToken()
	if err != nil {
		return nil, err
	}

	if err := s.sessions.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:           uuid.New(),
		Token:        token,
		UserID:       user.ID,
		IssuedAt:     now,
		LastActivity: now,
		CSRFToken:    csrfToken,
		Theme:        user.Theme,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate resolves the opaque token and enforces the sliding idle
// timeout. A hit refreshes last_activity to now; an idle-expired row is
// deleted on the spot and reported as expired.
func (s *SessionService) Validate(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	if session.IdleExpiredAt(now, s.timeout) {
		if err := s.sessions.DeleteByToken(ctx, token); err != nil {
			return nil, err
		}
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessions.RefreshActivity(ctx, token, now); err != nil {
		return nil, err
	}
	session.LastActivity = now

	return session, nil
}

// Destroy removes the session. Destroying a token that no longer exists
// is a no-op, not an error.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteByToken(ctx, token)
}

// GenerateToken returns a hex-encoded token from crypto/rand.
func GenerateToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
