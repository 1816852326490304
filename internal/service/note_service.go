package service

import (
	"context"
	"errors"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxTitleLen = 255

// NoteService is ownership-scoped CRUD over ciphertext blobs. The owner id
// always comes from a validated Identity; the content is stored and
// returned exactly as the client sent it.
type NoteService struct {
	noteRepo repository.NoteRepository
}

func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

func (s *NoteService) Create(ctx context.Context, ownerID uuid.UUID, title, encryptedContent string) (*domain.Note, error) {
	if err := validateNote(title, encryptedContent); err != nil {
		return nil, err
	}

	note := &domain.Note{
		ID:               uuid.New(),
		UserID:           ownerID,
		Title:            title,
		EncryptedContent: encryptedContent,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) List(ctx context.Context, ownerID uuid.UUID, search string) ([]*domain.Note, error) {
	return s.noteRepo.ListByUserID(ctx, ownerID, search)
}

func (s *NoteService) Get(ctx context.Context, ownerID, noteID uuid.UUID) (*domain.Note, error) {
	note, err := s.noteRepo.GetByID(ctx, noteID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, ownerID, noteID uuid.UUID, title, encryptedContent string) (*domain.Note, error) {
	if err := validateNote(title, encryptedContent); err != nil {
		return nil, err
	}

	note, err := s.Get(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.EncryptedContent = encryptedContent
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID, noteID uuid.UUID) error {
	deleted, err := s.noteRepo.Delete(ctx, noteID, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNoteNotFound
	}
	return nil
}

func validateNote(title, encryptedContent string) error {
	if title == "" {
		return domain.NewValidationError("title is required")
	}
	if len(title) > maxTitleLen {
		return domain.NewValidationError("title is too long (max 255 characters)")
	}
	if encryptedContent == "" {
		return domain.NewValidationError("note content cannot be empty")
	}
	return nil
}
