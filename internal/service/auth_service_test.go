package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aviksec/notes-vault/internal/domain"
	"github.com/aviksec/notes-vault/internal/repository"
	"github.com/aviksec/notes-vault/internal/repository/postgres"
	"github.com/aviksec/notes-vault/internal/service"
	"github.com/aviksec/notes-vault/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAuth wires the facade with a controllable clock so lockout
// windows and idle timeouts can be crossed without sleeping.
func newTestAuth(testDB *testutil.TestDB) (*service.AuthService, *repository.Repositories, func(time.Duration)) {
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()

	credentials := service.NewCredentialService(repos.User, cfg)
	guard := service.NewAttemptGuard(repos.LoginAttempt, cfg)
	sessions := service.NewSessionService(repos.Session, cfg)
	csrf := service.NewCSRFGuard(cfg)

	current := time.Now()
	auth := service.NewAuthService(credentials, guard, sessions, csrf, repos.User, repos.Audit).
		WithNow(func() time.Time { return current })

	advance := func(d time.Duration) { current = current.Add(d) }
	return auth, repos, advance
}

func TestAuthService_Authenticate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	auth, repos, _ := newTestAuth(testDB)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("alice@x.com").
		WithPassword("password123").
		Build(t, testDB.DB)

	result, err := auth.Authenticate(ctx, user.Email, rawPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	assert.NotEmpty(t, result.Session.Token)
	assert.NotEmpty(t, result.Session.CSRFToken)

	// Login stamps last_login
	stored, err := repos.User.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestAuthService_Authenticate_EnumerationResistance(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	auth, repos, _ := newTestAuth(testDB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("known@x.com").
		WithPassword("correctpassword").
		Build(t, testDB.DB)

	_, unknownErr := auth.Authenticate(ctx, "unknown@x.com", "whatever123")
	_, wrongErr := auth.Authenticate(ctx, user.Email, "wrongpassword")

	// Unknown email and wrong password are indistinguishable
	assert.ErrorIs(t, unknownErr, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, domain.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	// Both failures were counted against their respective identifiers
	for _, email := range []string{"unknown@x.com", user.Email} {
		attempt, err := repos.LoginAttempt.Get(ctx, email)
		require.NoError(t, err)
		require.NotNil(t, attempt)
		assert.Equal(t, 1, attempt.AttemptCount)
	}
}

func TestAuthService_Lockout(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	auth, repos, advance := newTestAuth(testDB)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("locked@x.com").
		WithPassword("password123").
		Build(t, testDB.DB)

	for i := 0; i < 5; i++ {
		_, err := auth.Authenticate(ctx, user.Email, "wrongpassword")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// The sixth attempt is refused before credentials are even looked at
	_, err := auth.Authenticate(ctx, user.Email, rawPassword)
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	// Other identifiers are unaffected
	_, err = auth.Authenticate(ctx, "someone-else@x.com", "whatever123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Once the window elapses the next attempt is evaluated on
	// credentials again, and success clears the record
	advance(301 * time.Second)
	result, err := auth.Authenticate(ctx, user.Email, rawPassword)
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	attempt, err := repos.LoginAttempt.Get(ctx, user.Email)
	require.NoError(t, err)
	assert.Nil(t, attempt)
}

func TestAuthService_StaleFailuresRestartCount(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	auth, repos, advance := newTestAuth(testDB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("stale@x.com").
		WithPassword("password123").
		Build(t, testDB.DB)

	for i := 0; i < 5; i++ {
		_, err := auth.Authenticate(ctx, user.Email, "wrongpassword")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// Past the window the stale record is cleared before the new failure
	// is recorded, so the count restarts instead of carrying over
	advance(301 * time.Second)
	_, err := auth.Authenticate(ctx, user.Email, "wrongpassword")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	attempt, err := repos.LoginAttempt.Get(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, attempt)
	assert.Equal(t, 1, attempt.AttemptCount)
}

func TestAuthService_LockoutBoundary(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	auth, _, advance := newTestAuth(testDB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("boundary@x.com").
		WithPassword("password123").
		Build(t, testDB.DB)

	for i := 0; i < 5; i++ {
		_, err := auth.Authenticate(ctx, user.Email, "wrongpassword")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}

	// Exactly at the window boundary the attempt is allowed through
	advance(300 * time.Second)
	_, err := auth.Authenticate(ctx, user.Email, "wrongpassword")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Authorize(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	auth, _, advance := newTestAuth(testDB)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithUsername("authz_user").
		WithEmail("authz@x.com").
		WithPassword("password123").
		WithTheme(domain.ThemeDark).
		Build(t, testDB.DB)

	result, err := auth.Authenticate(ctx, user.Email, rawPassword)
	require.NoError(t, err)
	session := result.Session

	t.Run("read without csrf", func(t *testing.T) {
		identity, err := auth.Authorize(ctx, session.Token, "", false)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.UserID)
		assert.Equal(t, "authz_user", identity.Username)
		assert.Equal(t, domain.ThemeDark, identity.Theme)
	})

	t.Run("mutation with valid csrf", func(t *testing.T) {
		_, err := auth.Authorize(ctx, session.Token, session.CSRFToken, true)
		assert.NoError(t, err)
	})

	t.Run("mutation with missing csrf", func(t *testing.T) {
		_, err := auth.Authorize(ctx, session.Token, "", true)
		assert.ErrorIs(t, err, domain.ErrCSRFInvalid)
	})

	t.Run("mutation with mismatched csrf", func(t *testing.T) {
		_, err := auth.Authorize(ctx, session.Token, "bogus-token", true)
		assert.ErrorIs(t, err, domain.ErrCSRFInvalid)
	})

	t.Run("csrf token from a different session", func(t *testing.T) {
		other, otherPassword := testutil.NewUserBuilder().
			WithEmail("other@x.com").
			Build(t, testDB.DB)
		otherResult, err := auth.Authenticate(ctx, other.Email, otherPassword)
		require.NoError(t, err)

		_, err = auth.Authorize(ctx, session.Token, otherResult.Session.CSRFToken, true)
		assert.ErrorIs(t, err, domain.ErrCSRFInvalid)
	})

	t.Run("unknown session token", func(t *testing.T) {
		_, err := auth.Authorize(ctx, "deadbeef", "", false)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("idle session expires", func(t *testing.T) {
		advance(1801 * time.Second)
		_, err := auth.Authorize(ctx, session.Token, "", false)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}

func TestAuthService_Logout(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	auth, _, _ := newTestAuth(testDB)
	ctx := context.Background()

	user, rawPassword := testutil.NewUserBuilder().
		WithEmail("logout@x.com").
		Build(t, testDB.DB)

	result, err := auth.Authenticate(ctx, user.Email, rawPassword)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, result.Session.Token))

	_, err = auth.Authorize(ctx, result.Session.Token, "", false)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	// Logging out twice is fine
	assert.NoError(t, auth.Logout(ctx, result.Session.Token))
}
