package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ValidTheme reports whether theme is one of the supported preferences.
func ValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Theme        string     `json:"theme" gorm:"not null;default:light"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Identity is what the authorization path hands to the rest of the
// application once a request's session (and CSRF token, when required)
// checks out. Owner scoping for notes always starts from Identity.UserID,
// never from client input.
type Identity struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Theme    string    `json:"theme"`
}
