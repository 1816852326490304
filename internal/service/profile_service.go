package service

import (
	"context"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository"
	"github.com/google/uuid"
)

type ProfileService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func NewProfileService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *ProfileService {
	return &ProfileService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// UpdateTheme stores the preference on the user and refreshes the
// snapshot held by the user's live sessions.
func (s *ProfileService) UpdateTheme(ctx context.Context, userID uuid.UUID, theme string) error {
	if !domain.ValidTheme(theme) {
		return domain.NewValidationError("invalid theme value")
	}

	if err := s.userRepo.UpdateTheme(ctx, userID, theme); err != nil {
		return err
	}

	return s.sessionRepo.UpdateTheme(ctx, userID, theme)
}
