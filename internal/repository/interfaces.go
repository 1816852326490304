package repository

import (
	"context"
	"time"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateTheme(ctx context.Context, id uuid.UUID, theme string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	// RefreshActivity sets last_activity in a single UPDATE so concurrent
	// requests on the same session cannot lose the newest timestamp.
	RefreshActivity(ctx context.Context, token string, at time.Time) error
	UpdateTheme(ctx context.Context, userID uuid.UUID, theme string) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type LoginAttemptRepository interface {
	Get(ctx context.Context, email string) (*domain.LoginAttempt, error)
	// RecordFailure inserts the first failure or atomically increments the
	// existing count; two concurrent failures must both be counted. The
	// increment is unconditional: a record whose window has elapsed must be
	// Cleared before recording against it (AttemptGuard.CheckAllowed does),
	// or the stale count carries over.
	RecordFailure(ctx context.Context, email string, at time.Time) error
	Clear(ctx context.Context, email string) error
}

type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Note, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, search string) ([]*domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
}

type AuditRepository interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
}

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	LoginAttempt LoginAttemptRepository
	Note         NoteRepository
	Audit        AuditRepository
}
