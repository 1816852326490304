package service

import (
	"context"
	"errors"
	"net/mail"

	"github.com/aviksec/notes-vault/internal/config"
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
)

// CredentialService owns registration and password verification. It never
// touches sessions or attempt counters; AuthService composes those.
type CredentialService struct {
	userRepo repository.UserRepository
	cost     int
	// dummyHash is the compare target for unknown emails, so a miss
	// costs the same bcrypt work as a wrong password.
	dummyHash []byte
}

func NewCredentialService(userRepo repository.UserRepository, cfg *config.Config) *CredentialService {
	// Cost is range-checked at config load, so this cannot fail.
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("credential-timing-pad"), cfg.BcryptCost)
	return &CredentialService{
		userRepo:  userRepo,
		cost:      cfg.BcryptCost,
		dummyHash: dummyHash,
	}
}

func (s *CredentialService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if err := validateRegistration(username, email, password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Theme:        domain.ThemeLight,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Verify checks the password against the stored bcrypt hash. The compare
// is bcrypt's own constant-time one; hashes are never compared byte-wise.
// An unknown email still pays for a full compare against a dummy hash,
// otherwise the fast miss would reveal which accounts exist.
func (s *CredentialService) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrWrongPassword
	}

	return user, nil
}

func validateRegistration(username, email, password string) error {
	if username == "" || email == "" || password == "" {
		return domain.NewValidationError("all fields are required")
	}
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return domain.NewValidationError("username must be between 3 and 50 characters")
	}
	if len(password) < minPasswordLen {
		return domain.NewValidationError("password must be at least 8 characters long")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.NewValidationError("invalid email address")
	}
	return nil
}
