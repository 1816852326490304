package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Audit event kinds for security-relevant failures.
const (
	AuditRateLimited        = "rate_limited"
	AuditInvalidCredentials = "invalid_credentials"
	AuditCSRFRejected       = "csrf_rejected"
)

// AuditEvent records a security-relevant failure for later review. Events
// are written best-effort and never change the response the client sees.
type AuditEvent struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind      string         `json:"kind" gorm:"not null;index"`
	Subject   string         `json:"subject" gorm:"not null"`
	Detail    datatypes.JSON `json:"detail"`
	CreatedAt time.Time      `json:"createdAt"`
}
