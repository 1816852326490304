package service

import (
	"github.com/aviksec/notes-vault/internal/config"
	"github.com/aviksec/notes-vault/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Note    *NoteService
	Profile *ProfileService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	credentials := NewCredentialService(repos.User, cfg)
	guard := NewAttemptGuard(repos.LoginAttempt, cfg)
	sessions := NewSessionService(repos.Session, cfg)
	csrf := NewCSRFGuard(cfg)

	return &Services{
		Auth:    NewAuthService(credentials, guard, sessions, csrf, repos.User, repos.Audit),
		Note:    NewNoteService(repos.Note),
		Profile: NewProfileService(repos.User, repos.Session),
	}
}
