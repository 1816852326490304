package domain

import (
	"time"

	"github.com/google/uuid"
)

// Note stores a title in plaintext (it is searchable) and content as an
// opaque ciphertext blob. Encryption and decryption happen on the client;
// the server never holds the key and never interprets EncryptedContent.
type Note struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	Title            string    `json:"title" gorm:"size:255;not null"`
	EncryptedContent string    `json:"encryptedContent" gorm:"type:text;not null"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
