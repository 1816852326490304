package postgres

import (
	"context"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *noteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, note *domain.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *noteRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*domain.Note, error) {
	var note domain.Note
	err := r.db.WithContext(ctx).First(&note, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) ListByUserID(ctx context.Context, userID uuid.UUID, search string) ([]*domain.Note, error) {
	var notes []*domain.Note
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if search != "" {
		query = query.Where("title LIKE ?", "%"+search+"%")
	}
	err := query.Order("updated_at DESC").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note *domain.Note) error {
	return r.db.WithContext(ctx).Model(note).
		Where("user_id = ?", note.UserID).
		Updates(map[string]interface{}{
			"title":             note.Title,
			"encrypted_content": note.EncryptedContent,
		}).Error
}

func (r *noteRepository) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Note{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
