package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robcowart/portfolio/internal/api"
	"github.com/robcowart/portfolio/internal/config"
	"github.com/robcowart/portfolio/internal/database"
	"github.com/robcowart/portfolio/internal/mail"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
)

const (
	version         = "0.1.0"
	shutdownTimeout = 30 * time.Second
)

func main() {
	flags, err := config.ParseFlags(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	if flags.ShowVersion() {
		fmt.Printf("Portfolio v%s\n", version)
		return
	}

	config.LoadDotEnv()
	cfg, err := config.Load(flags.ConfigFile(), flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Portfolio stopped with error", zap.Error(err))
	}
}

// run serves the site until ctx is cancelled or the listener fails
func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	router, err := api.NewRouter(cfg, db, mail.NewSMTPSender(cfg.Mail, logger), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("Portfolio listening",
		zap.String("version", version),
		zap.String("env", cfg.Env),
		zap.String("database", db.Type()),
		zap.String("address", srv.Addr),
		zap.Bool("tls", cfg.Server.TLSEnabled),
	)

	errCh := make(chan error, 1)
	go serve(srv, cfg.Server, errCh)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// serve reports the listener error on errCh. A graceful shutdown reports nothing.
func serve(srv *http.Server, cfg config.ServerConfig, errCh chan<- error) {
	var err error
	if cfg.TLSEnabled {
		err = srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
	} else {
		err = srv.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		errCh <- err
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	if cfg.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	return zapConfig.Build()
}
