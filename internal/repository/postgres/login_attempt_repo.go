package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/aviksec/notes-vault/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type loginAttemptRepository struct {
	db *gorm.DB
}

func NewLoginAttemptRepository(db *gorm.DB) *loginAttemptRepository {
	return &loginAttemptRepository{db: db}
}

func (r *loginAttemptRepository) Get(ctx context.Context, email string) (*domain.LoginAttempt, error) {
	var attempt domain.LoginAttempt
	err := r.db.WithContext(ctx).First(&attempt, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// RecordFailure upserts in a single statement so two concurrent failures
// for the same email both land in attempt_count.
func (r *loginAttemptRepository) RecordFailure(ctx context.Context, email string, at time.Time) error {
	attempt := domain.LoginAttempt{
		Email:        email,
		AttemptCount: 1,
		LastAttempt:  at,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"attempt_count": gorm.Expr("login_attempts.attempt_count + 1"),
			"last_attempt":  at,
		}),
	}).Create(&attempt).Error
}

func (r *loginAttemptRepository) Clear(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Delete(&domain.LoginAttempt{}, "email = ?", email).Error
}
