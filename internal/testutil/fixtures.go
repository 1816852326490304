package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/aviksec/notes-vault/internal/api/middleware"
	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	password string
	theme    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		password: "testpassword123",
		theme:    domain.ThemeLight,
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithTheme sets the theme preference
func (b *UserBuilder) WithTheme(theme string) *UserBuilder {
	b.theme = theme
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Theme:        b.theme,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// NoteBuilder creates test notes directly in the database
type NoteBuilder struct {
	title            string
	encryptedContent string
	updatedAt        time.Time
}

func NewNoteBuilder() *NoteBuilder {
	return &NoteBuilder{
		title:            fmt.Sprintf("note_%s", uuid.New().String()[:8]),
		encryptedContent: "U2FsdGVkX1+fixture+ciphertext",
		updatedAt:        time.Now(),
	}
}

func (b *NoteBuilder) WithTitle(title string) *NoteBuilder {
	b.title = title
	return b
}

func (b *NoteBuilder) WithEncryptedContent(content string) *NoteBuilder {
	b.encryptedContent = content
	return b
}

func (b *NoteBuilder) WithUpdatedAt(at time.Time) *NoteBuilder {
	b.updatedAt = at
	return b
}

func (b *NoteBuilder) Build(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *domain.Note {
	t.Helper()

	note := &domain.Note{
		ID:               uuid.New(),
		UserID:           ownerID,
		Title:            b.title,
		EncryptedContent: b.encryptedContent,
		CreatedAt:        b.updatedAt,
		UpdatedAt:        b.updatedAt,
	}

	if err := db.Create(note).Error; err != nil {
		t.Fatalf("failed to create note: %v", err)
	}

	return note
}

// LoginResponse matches the API login response
type LoginResponse struct {
	User struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Theme    string `json:"theme"`
	} `json:"user"`
	CSRFToken string `json:"csrfToken"`
}

// AuthClient drives the API with the session cookie and CSRF token a
// browser client would hold.
type AuthClient struct {
	ts            *TestServer
	SessionCookie *http.Cookie
	CSRFToken     string
}

// PreSessionCSRF fetches the anonymous-form token.
func PreSessionCSRF(t *testing.T, ts *TestServer) string {
	t.Helper()

	resp, err := http.Get(ts.APIURL("/auth/csrf"))
	if err != nil {
		t.Fatalf("failed to fetch csrf token: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode csrf response: %v", err)
	}
	return body["csrfToken"]
}

// Login authenticates through the API and returns a client carrying the
// issued session cookie and CSRF token.
func Login(t *testing.T, ts *TestServer, email, password string) *AuthClient {
	t.Helper()

	resp := PostLogin(t, ts, email, password)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("login response did not set a session cookie")
	}

	return &AuthClient{
		ts:            ts,
		SessionCookie: sessionCookie,
		CSRFToken:     loginResp.CSRFToken,
	}
}

// PostLogin performs a login request with a valid pre-session CSRF token
// and returns the raw response.
func PostLogin(t *testing.T, ts *TestServer, email, password string) *http.Response {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})

	req, err := http.NewRequest(http.MethodPost, ts.APIURL("/auth/login"), bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to build login request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.CSRFHeader, PreSessionCSRF(t, ts))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	return resp
}

// Do sends an authenticated request. The CSRF header is attached for
// every method; the server ignores it on reads.
func (c *AuthClient) Do(t *testing.T, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.ts.APIURL(path), body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(c.SessionCookie)
	if c.CSRFToken != "" {
		req.Header.Set(middleware.CSRFHeader, c.CSRFToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
