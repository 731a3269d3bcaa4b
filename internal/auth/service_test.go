package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/config"
	"ticketly/internal/users"
)

func newTestService(t *testing.T) (Service, users.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&users.User{}))

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			AccessExpiresIn:  15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}

	repo := users.NewRepository(db)
	return NewService(repo, cfg), repo
}

func seedAdmin(t *testing.T, repo users.Repository, username, password string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &users.User{
		Username:     &username,
		PasswordHash: string(hashed),
		FullName:     "Platform Admin",
		Role:         users.RoleAdmin,
		Status:       users.StatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), admin))
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Email:    "somchai@example.com",
		Password: "secret123",
		FullName: "Somchai Jaidee",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, string(users.RoleCustomer), string(resp.User.Role))

	login, err := svc.Login(ctx, &LoginRequest{
		Email:    "somchai@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	claims, err := svc.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "access", claims.Type)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Email:    "malee@example.com",
		Password: "secret123",
		FullName: "Malee Srisuk",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterRequest{
		Email:    "malee@example.com",
		Password: "other456",
		FullName: "Imposter",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{
		Email:    "somchai@example.com",
		Password: "secret123",
		FullName: "Somchai Jaidee",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{
		Email:    "somchai@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestLoginChannelsByRole(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()
	seedAdmin(t, repo, "admin", "qwerty")

	// Admin logs in with username.
	resp, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "qwerty"})
	require.NoError(t, err)
	assert.Equal(t, string(users.RoleAdmin), string(resp.User.Role))

	// A customer account cannot use the username channel.
	_, err = svc.Register(ctx, &RegisterRequest{
		Username: "somchai",
		Email:    "somchai@example.com",
		Password: "secret123",
		FullName: "Somchai Jaidee",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Username: "somchai", Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Email:    "somchai@example.com",
		Password: "secret123",
		FullName: "Somchai Jaidee",
	})
	require.NoError(t, err)

	pair, err := svc.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(ctx, resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Email:    "somchai@example.com",
		Password: "secret123",
		FullName: "Somchai Jaidee",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	userID := mustParseUUID(t, claims.UserID)

	err = svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpass456",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))

	require.NoError(t, svc.ChangePassword(ctx, userID, &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newpass456",
	}))

	_, err = svc.Login(ctx, &LoginRequest{Email: "somchai@example.com", Password: "newpass456"})
	require.NoError(t, err)
}

func mustParseUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
