package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamthree/jobapply/internal/app/models"
	"github.com/teamthree/jobapply/internal/pkg/apperrors"
	"github.com/teamthree/jobapply/internal/pkg/auth"
)

func newAuthFixture() (*AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "test",
	})
	return NewAuthService(userRepo, jwtService), userRepo
}

func TestRegisterSuccess(t *testing.T) {
	svc, userRepo := newAuthFixture()

	result, err := svc.Register(context.Background(), "New@Example.com", "password123", "Ada", "Lovelace")
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", result.User.Email)
	assert.Equal(t, models.RoleUser, result.User.RoleType)
	assert.NotEmpty(t, result.Token)
	// Registration opens a session immediately.
	assert.Len(t, userRepo.sessions, 1)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthFixture()

	tests := []struct {
		name                                   string
		email, password, firstName, lastName   string
		message                                string
	}{
		{"missing fields", "", "password123", "Ada", "Lovelace", "All fields are required"},
		{"bad email", "not-an-email", "password123", "Ada", "Lovelace", "Please enter a valid email address"},
		{"short password", "a@b.com", "short", "Ada", "Lovelace", "Password must be at least 8 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.email, tt.password, tt.firstName, tt.lastName)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), "a@b.com", "password123", "Ada", "Lovelace")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "A@B.COM", "password123", "Grace", "Hopper")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestLoginSuccess(t *testing.T) {
	svc, userRepo := newAuthFixture()

	_, err := svc.Register(context.Background(), "a@b.com", "password123", "Ada", "Lovelace")
	require.NoError(t, err)

	result, err := svc.Login(context.Background(), "a@b.com", "password123")
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.NotNil(t, userRepo.users[result.User.ID].LastLoginAt)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), "a@b.com", "password123", "Ada", "Lovelace")
	require.NoError(t, err)

	// Unknown email and wrong password fail identically.
	_, unknownErr := svc.Login(context.Background(), "nobody@b.com", "password123")
	require.Error(t, unknownErr)
	assert.Equal(t, "Invalid email or password", unknownErr.Error())

	_, wrongErr := svc.Login(context.Background(), "a@b.com", "wrong-password")
	require.Error(t, wrongErr)
	assert.Equal(t, "Invalid email or password", wrongErr.Error())
}

func TestLogout(t *testing.T) {
	svc, userRepo := newAuthFixture()

	result, err := svc.Register(context.Background(), "a@b.com", "password123", "Ada", "Lovelace")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), result.Token))
	assert.Empty(t, userRepo.sessions)

	// A second logout finds no session.
	err = svc.Logout(context.Background(), result.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestValidateSessionExpired(t *testing.T) {
	svc, userRepo := newAuthFixture()

	require.NoError(t, userRepo.CreateSession(context.Background(), 1, "stale-token", time.Now().Add(-time.Hour)))

	_, err := svc.ValidateSession(context.Background(), "stale-token")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestCleanupExpiredSessions(t *testing.T) {
	svc, userRepo := newAuthFixture()

	require.NoError(t, userRepo.CreateSession(context.Background(), 1, "stale", time.Now().Add(-time.Hour)))
	require.NoError(t, userRepo.CreateSession(context.Background(), 1, "live", time.Now().Add(time.Hour)))

	removed, err := svc.CleanupExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Len(t, userRepo.sessions, 1)
}
