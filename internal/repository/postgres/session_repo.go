package postgres

import (
	"context"
	"time"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).First(&session, "token = ?", token).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) RefreshActivity(ctx context.Context, token string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("token = ?", token).
		Update("last_activity", at).Error
}

func (r *sessionRepository) UpdateTheme(ctx context.Context, userID uuid.UUID, theme string) error {
	return r.db.WithContext(ctx).Model(&domain.Session{}).
		Where("user_id = ?", userID).
		Update("theme", theme).Error
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "token = ?", token).Error
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Session{}, "user_id = ?", userID).Error
}
