package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository/postgres"
	"github.com/aviksec/notes-vault/internal/service"
	"github.com/aviksec/notes-vault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	credentials := service.NewCredentialService(repos.User, cfg)
	ctx := context.Background()

	tests := []struct {
		name       string
		username   string
		email      string
		password   string
		setup      func()
		wantErr    error
		wantValErr bool
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@x.com",
			password: "password123",
		},
		{
			name:     "duplicate username",
			username: "bob",
			email:    "bob2@x.com",
			password: "password123",
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("bob").
					WithEmail("bob@x.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrUsernameTaken,
		},
		{
			name:     "duplicate email",
			username: "carol2",
			email:    "carol@x.com",
			password: "password123",
			setup: func() {
				testutil.NewUserBuilder().
					WithUsername("carol").
					WithEmail("carol@x.com").
					Build(t, testDB.DB)
			},
			wantErr: domain.ErrEmailTaken,
		},
		{
			name:       "username too short",
			username:   "ab",
			email:      "ab@x.com",
			password:   "password123",
			wantValErr: true,
		},
		{
			name:       "username too long",
			username:   strings.Repeat("a", 51),
			email:      "long@x.com",
			password:   "password123",
			wantValErr: true,
		},
		{
			name:       "password too short",
			username:   "dave",
			email:      "dave@x.com",
			password:   "short",
			wantValErr: true,
		},
		{
			name:       "invalid email",
			username:   "erin",
			email:      "not-an-email",
			password:   "password123",
			wantValErr: true,
		},
		{
			name:       "empty fields",
			username:   "",
			email:      "",
			password:   "",
			wantValErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			user, err := credentials.Register(ctx, tt.username, tt.email, tt.password)

			if tt.wantValErr {
				assert.True(t, domain.IsValidation(err), "expected validation error, got %v", err)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, domain.ThemeLight, user.Theme)
			// The plaintext never reaches storage
			assert.NotEmpty(t, user.PasswordHash)
			assert.NotContains(t, user.PasswordHash, tt.password)
		})
	}
}

func TestCredentialService_Verify(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	credentials := service.NewCredentialService(repos.User, cfg)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("verify@x.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "correct password",
			email:    user.Email,
			password: rawPassword,
		},
		{
			name:     "wrong password",
			email:    user.Email,
			password: "wrongpassword",
			wantErr:  domain.ErrWrongPassword,
		},
		{
			name:     "unknown email",
			email:    "nobody@x.com",
			password: rawPassword,
			wantErr:  domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := credentials.Verify(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

// An unknown email must burn the same bcrypt work as a wrong password;
// an instant miss would let callers enumerate accounts by latency.
func TestCredentialService_VerifyTimingParity(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	cfg.BcryptCost = 10
	credentials := service.NewCredentialService(repos.User, cfg)
	ctx := context.Background()

	user, err := credentials.Register(ctx, "timinguser", "timing@x.com", "correctpassword")
	require.NoError(t, err)

	start := time.Now()
	_, err = credentials.Verify(ctx, user.Email, "wrongpassword")
	wrongElapsed := time.Since(start)
	assert.ErrorIs(t, err, domain.ErrWrongPassword)

	start = time.Now()
	_, err = credentials.Verify(ctx, "nobody@x.com", "wrongpassword")
	unknownElapsed := time.Since(start)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Both paths pay for a cost-10 compare, so the miss cannot be the
	// cheap branch. Generous bound to absorb scheduler noise.
	assert.Greater(t, unknownElapsed, wrongElapsed/3)
}
