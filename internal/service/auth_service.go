package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthService composes the credential store, the attempt guard, the
// session manager and the CSRF guard into the two operations the rest of
// the application uses: Authenticate and Authorize.
type AuthService struct {
	credentials *CredentialService
	guard       *AttemptGuard
	sessions    *SessionService
	csrf        *CSRFGuard
	userRepo    repository.UserRepository
	auditRepo   repository.AuditRepository
	now         func() time.Time
}

func NewAuthService(
	credentials *CredentialService,
	guard *AttemptGuard,
	sessions *SessionService,
	csrf *CSRFGuard,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		guard:       guard,
		sessions:    sessions,
		csrf:        csrf,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		now:         time.Now,
	}
}

// WithNow overrides the clock. Tests use it to walk through lockout
// windows and idle timeouts without sleeping.
func (s *AuthService) WithNow(now func() time.Time) *AuthService {
	s.now = now
	return s
}

type AuthResult struct {
	User    *domain.User
	Session *domain.Session
}

// Register creates an account. Registration does not log the user in; a
// session is only ever issued through Authenticate.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.credentials.Register(ctx, username, email, password)
}

// Authenticate runs the login flow in a fixed order: the guard gate comes
// before any credential work, so a locked email gets the same answer
// whether or not the password would have been right. Unknown email and
// wrong password collapse into one error value.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	now := s.now()

	allowed, err := s.guard.CheckAllowed(ctx, email, now)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.audit(ctx, domain.AuditRateLimited, email, nil)
		return nil, domain.ErrRateLimited
	}

	user, err := s.credentials.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrWrongPassword) {
			if rerr := s.guard.RecordFailure(ctx, email, now); rerr != nil {
				return nil, rerr
			}
			s.audit(ctx, domain.AuditInvalidCredentials, email, nil)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.guard.RecordSuccess(ctx, email); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("ERROR [service.Auth] failed to update last login: %v", err)
	}

	session, err := s.sessions.Create(ctx, user, now)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Session: session}, nil
}

// Authorize validates the session (refreshing its idle clock), confirms
// the owning user still exists, and checks the CSRF token when the
// request mutates state.
func (s *AuthService) Authorize(ctx context.Context, sessionToken, csrfToken string, requiresCSRF bool) (*domain.Identity, error) {
	now := s.now()

	session, err := s.sessions.Validate(ctx, sessionToken, now)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrSessionExpired) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned session; the owning account is gone.
			if derr := s.sessions.Destroy(ctx, sessionToken); derr != nil {
				log.Printf("ERROR [service.Auth] failed to destroy orphaned session: %v", derr)
			}
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if requiresCSRF && !s.csrf.VerifySession(session, csrfToken) {
		s.audit(ctx, domain.AuditCSRFRejected, user.Email, map[string]interface{}{
			"userId": user.ID.String(),
		})
		return nil, domain.ErrCSRFInvalid
	}

	return &domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Theme:    user.Theme,
	}, nil
}

// Logout destroys the session behind the token; absent sessions are fine.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	return s.sessions.Destroy(ctx, sessionToken)
}

// PreSessionCSRF issues the anonymous-form token for login and register.
func (s *AuthService) PreSessionCSRF() (string, error) {
	return s.csrf.IssuePreSession()
}

// VerifyPreSessionCSRF checks the anonymous-form token.
func (s *AuthService) VerifyPreSessionCSRF(ctx context.Context, token string) bool {
	ok := s.csrf.VerifyPreSession(token)
	if !ok {
		s.audit(ctx, domain.AuditCSRFRejected, "anonymous", nil)
	}
	return ok
}

// audit writes a security event; failures are logged, never surfaced.
func (s *AuthService) audit(ctx context.Context, kind, subject string, detail map[string]interface{}) {
	event := &domain.AuditEvent{
		ID:        uuid.New(),
		Kind:      kind,
		Subject:   subject,
		CreatedAt: s.now(),
	}
	if detail != nil {
		if raw, err := json.Marshal(detail); err == nil {
			event.Detail = raw
		}
	}
	if err := s.auditRepo.Record(ctx, event); err != nil {
		log.Printf("ERROR [service.Auth] failed to record audit event %s: %v", kind, err)
	}
}
