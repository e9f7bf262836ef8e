package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eduforge/lms/internal/config"
	"github.com/eduforge/lms/internal/models"
	"github.com/eduforge/lms/internal/tokens"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	return &AuthService{
		DB:        newTestDB(t),
		JWTSecret: []byte("test-jwt-secret"),
		TokenTTL:  time.Hour,
	}
}

func TestAuthService_RegisterThenAuthenticate(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "pw123", user.PasswordHash)

	got, err := svc.Authenticate(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "other alice", "a@x.com", "different")
	require.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, svc.DB.Model(&models.User{}).Where("email = ?", "a@x.com").Count(&count).Error)
	assert.Equal(t, int64(1), count, "no partial row may be left behind")
}

func TestAuthService_Authenticate_UniformFailure(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "a@x.com", password: "nope"},
		{name: "unknown email", email: "b@x.com", password: "pw123"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestAuthService_IssueThenResolve(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	got, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
}

func TestAuthService_Resolve_InvalidToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	_, err := svc.Resolve(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_Resolve_UserGone(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	require.NoError(t, svc.DB.Delete(&models.User{}, user.ID).Error)

	_, err = svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_Resolve_ExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "a@x.com", "pw123")
	require.NoError(t, err)

	token, err := tokens.Issue(user.ID, svc.JWTSecret, -time.Minute)
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
