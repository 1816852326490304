package postgres

import (
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Session{},
		&domain.LoginAttempt{},
		&domain.Note{},
		&domain.AuditEvent{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		LoginAttempt: NewLoginAttemptRepository(db),
		Note:         NewNoteRepository(db),
		Audit:        NewAuditRepository(db),
	}
}
