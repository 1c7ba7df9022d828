package main

import (
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robcowart/portfolio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			Type:   "sqlite",
			SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "portfolio.db")},
		},
		Session: config.SessionConfig{
			Secret:     "test-secret-key-for-testing-only-12345",
			Lifetime:   time.Hour,
			Issuer:     "portfolio-test",
			CookieName: "portfolio_session",
		},
		Logging: config.LoggingConfig{Level: "info", Format: "json"},
	}
}

func TestRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Stops cleanly when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		assert.NoError(t, run(ctx, testConfig(t), zap.NewNop()))
	})

	t.Run("Listener failure is returned", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		cfg := testConfig(t)
		cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = run(ctx, cfg, zap.NewNop())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "address already in use")
	})

	t.Run("Unsupported database fails before serving", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Database.Type = "mongodb"

		err := run(context.Background(), cfg, zap.NewNop())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize database")
	})
}

func TestServe(t *testing.T) {
	t.Run("Closed server reports nothing", func(t *testing.T) {
		srv := &http.Server{Addr: "127.0.0.1:0"}
		require.NoError(t, srv.Close())

		errCh := make(chan error, 1)
		serve(srv, config.ServerConfig{}, errCh)
		assert.Empty(t, errCh)
	})
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.LoggingConfig{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = newLogger(config.LoggingConfig{Level: "bogus", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}
