// Package config provides configuration management for the portfolio application.
// Values are layered: built-in defaults, an optional YAML file, the process
// environment (optionally seeded from a .env file) and finally command line flags.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvDevelopment selects the development profile
	EnvDevelopment = "development"
	// EnvProduction selects the production profile
	EnvProduction = "production"

	// DefaultSecretKey is only acceptable outside production
	DefaultSecretKey = "a_very_secret_key"

	// DefaultDevDatabaseURL is used when DEV_DATABASE_URL is not set
	DefaultDevDatabaseURL = "sqlite:///portfolio_dev.db"
	// DefaultProdDatabaseURL is used when DATABASE_URL is not set
	DefaultProdDatabaseURL = "sqlite:///portfolio_prod.db"
)

// Config holds all application configuration
type Config struct {
	Env      string         `yaml:"env"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Mail     MailConfig     `yaml:"mail"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `yaml:"port"`
	Host         string        `yaml:"host"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	TLSEnabled   bool          `yaml:"tls_enabled"`
	TLSCert      string        `yaml:"tls_cert"`
	TLSKey       string        `yaml:"tls_key"`
}

// DatabaseConfig holds database configuration. URL is resolved into Type and
// the driver specific section when the configuration is loaded.
type DatabaseConfig struct {
	URL      string         `yaml:"url"`
	Type     string         `yaml:"type"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig holds PostgreSQL-specific configuration
type PostgresConfig struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// SessionConfig holds the admin session settings. Secret signs both the
// session cookie and the token stored inside it.
type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	Lifetime   time.Duration `yaml:"lifetime"`
	Issuer     string        `yaml:"issuer"`
	CookieName string        `yaml:"cookie_name"`
}

// MailConfig holds outbound SMTP settings for contact notifications
type MailConfig struct {
	Server        string        `yaml:"server"`
	Port          int           `yaml:"port"`
	UseTLS        bool          `yaml:"use_tls"`
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password"`
	DefaultSender string        `yaml:"default_sender"`
	Timeout       time.Duration `yaml:"timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSEnabled   bool     `yaml:"cors_enabled"`
	CORSOrigins   []string `yaml:"cors_origins"`
	SecureCookies bool     `yaml:"secure_cookies"`
}

func defaultConfig() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Port:         5000,
			Host:         "0.0.0.0",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Session: SessionConfig{
			Secret:     DefaultSecretKey,
			Lifetime:   24 * time.Hour,
			Issuer:     "portfolio",
			CookieName: "portfolio_session",
		},
		Mail: MailConfig{
			Server:  "smtp.gmail.com",
			Port:    587,
			UseTLS:  true,
			Timeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadDotEnv seeds the process environment from .env files. Variables that are
// already set are left untouched; missing files are ignored.
func LoadDotEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		_ = godotenv.Load(p)
	}
}

// Load reads the configuration file (if present), applies environment and
// flag overrides, resolves the database URL and validates the result.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if flags != nil {
		cfg.applyFlags(flags)
	}

	if err := cfg.resolve(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func (c *Config) applyEnvOverrides() {
	if env := os.Getenv("FLASK_ENV"); env != "" {
		c.Env = env
	}

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if secret := os.Getenv("SECRET_KEY"); secret != "" {
		c.Session.Secret = secret
	}

	// Each profile reads its own database variable
	dbVar := "DEV_DATABASE_URL"
	if c.IsProduction() {
		dbVar = "DATABASE_URL"
	}
	if url := os.Getenv(dbVar); url != "" {
		c.Database.URL = url
	}

	if server := os.Getenv("MAIL_SERVER"); server != "" {
		c.Mail.Server = server
	}
	if port := os.Getenv("MAIL_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Mail.Port = p
		}
	}
	if useTLS, ok := os.LookupEnv("MAIL_USE_TLS"); ok {
		c.Mail.UseTLS = parseBool(useTLS)
	}
	if username := os.Getenv("MAIL_USERNAME"); username != "" {
		c.Mail.Username = username
	}
	if password := os.Getenv("MAIL_PASSWORD"); password != "" {
		c.Mail.Password = password
	}
	if sender := os.Getenv("MAIL_DEFAULT_SENDER"); sender != "" {
		c.Mail.DefaultSender = sender
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}

func (c *Config) applyFlags(f *Flags) {
	if v, ok := f.GetServerPort(); ok {
		c.Server.Port = v
	}
	if v, ok := f.GetServerHost(); ok {
		c.Server.Host = v
	}
	if v, ok := f.GetDatabaseURL(); ok {
		c.Database.URL = v
	}
	if v, ok := f.GetLogLevel(); ok {
		c.Logging.Level = v
	}
	if v, ok := f.GetLogFormat(); ok {
		c.Logging.Format = v
	}
}

// resolve fills derived values: database type and location from the URL and
// the mail sender fallback.
func (c *Config) resolve() error {
	if c.Database.URL == "" && c.Database.Type == "" {
		c.Database.URL = DefaultDevDatabaseURL
		if c.IsProduction() {
			c.Database.URL = DefaultProdDatabaseURL
		}
	}
	if c.Database.URL != "" {
		if err := c.Database.setURL(c.Database.URL); err != nil {
			return err
		}
	}

	if c.Mail.DefaultSender == "" {
		c.Mail.DefaultSender = c.Mail.Username
	}
	return nil
}

// setURL maps a database URL onto the driver configuration. sqlite:///path and
// bare paths select SQLite, postgres:// and postgresql:// select PostgreSQL.
func (d *DatabaseConfig) setURL(url string) error {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		d.Type = "postgres"
		d.Postgres.DSN = url
	case strings.HasPrefix(url, "sqlite:///"):
		d.Type = "sqlite"
		d.SQLite.Path = strings.TrimPrefix(url, "sqlite:///")
	case strings.Contains(url, "://"):
		return fmt.Errorf("unsupported database URL scheme: %s", url)
	default:
		d.Type = "sqlite"
		d.SQLite.Path = url
	}
	return nil
}

// IsProduction reports whether the production profile is active
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.TLSEnabled {
		if c.Server.TLSCert == "" || c.Server.TLSKey == "" {
			return fmt.Errorf("TLS enabled but cert or key not specified")
		}
	}

	if c.Database.Type != "sqlite" && c.Database.Type != "postgres" {
		return fmt.Errorf("invalid database type: %s (must be 'sqlite' or 'postgres')", c.Database.Type)
	}
	if c.Database.Type == "sqlite" && c.Database.SQLite.Path == "" {
		return fmt.Errorf("SQLite path not specified")
	}
	if c.Database.Type == "postgres" && c.Database.Postgres.DSN == "" {
		return fmt.Errorf("PostgreSQL DSN not specified")
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("session secret must not be empty")
	}
	if c.IsProduction() && c.Session.Secret == DefaultSecretKey {
		return fmt.Errorf("SECRET_KEY must be set in production")
	}

	if c.Mail.Port < 1 || c.Mail.Port > 65535 {
		return fmt.Errorf("invalid mail port: %d", c.Mail.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// GetDSN returns the database connection string based on the configured type
func (c *Config) GetDSN() string {
	switch c.Database.Type {
	case "sqlite":
		return c.Database.SQLite.Path
	case "postgres":
		return c.Database.Postgres.DSN
	default:
		return ""
	}
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1":
		return true
	default:
		return false
	}
}
