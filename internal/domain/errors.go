package domain

import "errors"

// Registration and credential errors
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("wrong password")
)

// Authentication and authorization errors. ErrInvalidCredentials is the
// single error surfaced for both unknown email and wrong password so the
// API cannot be used to enumerate accounts.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRateLimited        = errors.New("too many failed login attempts")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrCSRFInvalid        = errors.New("invalid security token")
)

// Note errors
var (
	ErrNoteNotFound = errors.New("note not found")
)

// ValidationError marks malformed input the user can correct. The message
// is safe to show verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a user-correctable validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
