package service

import (
	"context"
	"testing"
	"time"

	"github.com/robcowart/portfolio/internal/auth"
	"github.com/robcowart/portfolio/internal/config"
	"github.com/robcowart/portfolio/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// setupTestDB creates a test database with migrations
func setupTestDB(t *testing.T) (*database.Database, *config.Config) {
	dbPath := t.TempDir() + "/test.db"

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Type: "sqlite",
			SQLite: config.SQLiteConfig{
				Path: dbPath,
			},
		},
		Session: config.SessionConfig{
			Secret:   "test-secret-12345",
			Lifetime: 24 * time.Hour,
			Issuer:   "portfolio-test",
		},
		Mail: config.MailConfig{
			Server:        "smtp.example.com",
			Port:          587,
			Username:      "owner@example.com",
			DefaultSender: "site@example.com",
		},
	}

	db, err := database.New(cfg)
	require.NoError(t, err, "Failed to create test database")

	err = db.Migrate()
	require.NoError(t, err, "Failed to run migrations")

	t.Cleanup(func() { db.Close() })
	return db, cfg
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	db, cfg := setupTestDB(t)
	userService := NewUserService(db, cfg)

	t.Run("Create user successfully", func(t *testing.T) {
		user, err := userService.CreateUser(ctx, &CreateUserRequest{
			Username: "  admin  ",
			Password: "pw",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "admin", user.Username, "username is trimmed")
		assert.NotEqual(t, "pw", user.PasswordHash)
		assert.NoError(t, auth.VerifyPassword("pw", user.PasswordHash))
	})

	t.Run("Duplicate username fails", func(t *testing.T) {
		_, err := userService.CreateUser(ctx, &CreateUserRequest{Username: "admin", Password: "other"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("Empty username or password fails", func(t *testing.T) {
		_, err := userService.CreateUser(ctx, &CreateUserRequest{Username: " ", Password: "pw"})
		assert.Error(t, err)

		_, err = userService.CreateUser(ctx, &CreateUserRequest{Username: "someone", Password: ""})
		assert.Error(t, err)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	db, cfg := setupTestDB(t)
	userService := NewUserService(db, cfg)

	_, err := userService.PerformInitialSetup(ctx, &CreateUserRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)

	t.Run("Setup credentials authenticate", func(t *testing.T) {
		user, token, err := userService.Authenticate(ctx, "admin", "pw")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
		assert.NotEmpty(t, token)

		claims, err := auth.ParseSessionToken(token, cfg.Session.Secret, cfg.Session.Issuer)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("Wrong password fails", func(t *testing.T) {
		_, _, err := userService.Authenticate(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown user fails the same way", func(t *testing.T) {
		_, _, err := userService.Authenticate(ctx, "ghost", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		// the unknown user path compares against a hash of the real cost
		cost, err := bcrypt.Cost([]byte(dummyPasswordHash()))
		require.NoError(t, err)
		assert.Equal(t, auth.BcryptCost, cost)
		assert.ErrorIs(t, auth.VerifyPassword("pw", dummyPasswordHash()), auth.ErrPasswordMismatch)
	})
}

func TestUserService_VerifySession(t *testing.T) {
	ctx := context.Background()
	db, cfg := setupTestDB(t)
	userService := NewUserService(db, cfg)

	_, err := userService.CreateUser(ctx, &CreateUserRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)

	t.Run("Token from login is accepted", func(t *testing.T) {
		_, token, err := userService.Authenticate(ctx, "admin", "pw")
		require.NoError(t, err)

		user, err := userService.VerifySession(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "admin", user.Username)
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		_, err := userService.VerifySession(ctx, "garbage")
		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})

	t.Run("Token for a missing user is rejected", func(t *testing.T) {
		token, err := auth.IssueSessionToken(999, "ghost", cfg.Session.Secret, cfg.Session.Issuer, time.Hour)
		require.NoError(t, err)

		_, err = userService.VerifySession(ctx, token)
		assert.ErrorIs(t, err, auth.ErrInvalidSession)
	})
}

func TestUserService_PerformInitialSetup(t *testing.T) {
	ctx := context.Background()
	db, cfg := setupTestDB(t)
	userService := NewUserService(db, cfg)

	complete, err := userService.IsSetupComplete(ctx)
	require.NoError(t, err)
	assert.False(t, complete)

	user, err := userService.PerformInitialSetup(ctx, &CreateUserRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	complete, err = userService.IsSetupComplete(ctx)
	require.NoError(t, err)
	assert.True(t, complete)

	t.Run("Second setup is refused", func(t *testing.T) {
		_, err := userService.PerformInitialSetup(ctx, &CreateUserRequest{Username: "other", Password: "pw"})
		assert.ErrorIs(t, err, ErrSetupComplete)
	})
}
