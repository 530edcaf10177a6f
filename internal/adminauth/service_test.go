package adminauth_test

import (
	"context"
	"testing"
	"time"

	"osspace/internal/adminauth"
	"osspace/internal/shared/apperrors"
	"osspace/internal/shared/config"
	"osspace/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&adminauth.AdminSession{}))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, password string) adminauth.Service {
	t.Helper()
	cfg := &config.AdminConfig{
		AllowedEmails: []string{"admin@osspace.in", "Curator@osspace.in"},
		Password:      password,
		SessionTTL:    24 * time.Hour,
	}
	return adminauth.NewService(adminauth.NewRepository(db), cfg, logger.GetDefault())
}

func TestLogin_Success(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, "open-sesame")

	token, result, err := service.Login(context.Background(), adminauth.LoginRequest{
		Email:    "admin@osspace.in",
		Password: "open-sesame",
	})
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Equal(t, "admin@osspace.in", result.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, time.Minute)
}

func TestLogin_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	db := newTestDB(t)
	service := newTestService(t, db, string(hash))

	_, _, err = service.Login(context.Background(), adminauth.LoginRequest{
		Email:    "admin@osspace.in",
		Password: "open-sesame",
	})
	require.NoError(t, err)

	_, _, err = service.Login(context.Background(), adminauth.LoginRequest{
		Email:    "admin@osspace.in",
		Password: "wrong",
	})
	require.Error(t, err)
}

func TestLogin_GenericFailures(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, "open-sesame")
	ctx := context.Background()

	// Wrong password and unknown email must be indistinguishable.
	_, _, badPassword := service.Login(ctx, adminauth.LoginRequest{
		Email:    "admin@osspace.in",
		Password: "wrong",
	})
	_, _, unknownEmail := service.Login(ctx, adminauth.LoginRequest{
		Email:    "stranger@example.com",
		Password: "open-sesame",
	})

	require.Error(t, badPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, badPassword.Error(), unknownEmail.Error())
	assert.Equal(t, "Invalid credentials", apperrors.ClientMessage(badPassword))
	assert.True(t, apperrors.Is(badPassword, apperrors.CodeUnauthenticated))
}

func TestLogin_RotatesSessions(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, "open-sesame")
	ctx := context.Background()
	req := adminauth.LoginRequest{Email: "admin@osspace.in", Password: "open-sesame"}

	firstToken, _, err := service.Login(ctx, req)
	require.NoError(t, err)
	secondToken, _, err := service.Login(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, firstToken, secondToken)

	// Exactly one live session per admin.
	var count int64
	require.NoError(t, db.Model(&adminauth.AdminSession{}).
		Where("email = ?", "admin@osspace.in").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = service.Verify(ctx, firstToken)
	require.Error(t, err)
	session, err := service.Verify(ctx, secondToken)
	require.NoError(t, err)
	assert.Equal(t, "admin@osspace.in", session.Email)
}

func TestLogin_CaseInsensitiveAllowList(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, "open-sesame")

	_, result, err := service.Login(context.Background(), adminauth.LoginRequest{
		Email:    "curator@osspace.in",
		Password: "open-sesame",
	})
	require.NoError(t, err)
	assert.Equal(t, "curator@osspace.in", result.Email)
}

func TestVerify_ExpiredSessionDeletedLazily(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, "open-sesame")
	ctx := context.Background()

	token, _, err := service.Login(ctx, adminauth.LoginRequest{
		Email:    "admin@osspace.in",
		Password: "open-sesame",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&adminauth.AdminSession{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = service.Verify(ctx, token)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeUnauthenticated))

	var count int64
	require.NoError(t, db.Model(&adminauth.AdminSession{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestVerify_RejectsMalformedTokens(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, "open-sesame")
	ctx := context.Background()

	for _, token := range []string{"", "short", "ZZ" + string(make([]byte, 62)), "g2d8e1f0a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a1b0c9d8e7f6a5b4c3d2"} {
		_, err := service.Verify(ctx, token)
		require.Error(t, err, "token %q", token)
		assert.True(t, apperrors.Is(err, apperrors.CodeUnauthenticated))
	}
}

func TestLogout(t *testing.T) {
	db := newTestDB(t)
	service := newTestService(t, db, "open-sesame")
	ctx := context.Background()

	token, _, err := service.Login(ctx, adminauth.LoginRequest{
		Email:    "admin@osspace.in",
		Password: "open-sesame",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, token))
	_, err = service.Verify(ctx, token)
	require.Error(t, err)
}
