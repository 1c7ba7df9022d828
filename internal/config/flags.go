package config

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
)

// Flags holds all command line flag values
type Flags struct {
	fs *flag.FlagSet

	configFile *string
	version    *bool

	serverPort  *int
	serverHost  *string
	databaseURL *string
	logLevel    *string
	logFormat   *string
}

// ParseFlags defines and parses the command line flags for the named program
func ParseFlags(name string, args []string) (*Flags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &Flags{fs: fs}

	f.configFile = fs.StringP("config", "c", "config.yaml", "Path to configuration file")
	f.version = fs.BoolP("version", "v", false, "Print version and exit")

	f.serverPort = fs.Int("server.port", 0, "HTTP server port (overrides PORT)")
	f.serverHost = fs.String("server.host", "", "HTTP server bind address")
	f.databaseURL = fs.String("db.url", "", "Database URL (sqlite:///path.db or postgres://...)")
	f.logLevel = fs.StringP("log.level", "l", "", "Log level (debug, info, warn, error)")
	f.logFormat = fs.String("log.format", "", "Log format (json or console)")

	fs.Usage = func() {
		usage(os.Stderr, name, fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func usage(w io.Writer, name string, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [OPTIONS]\n\n", name)
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nConfiguration priority (highest to lowest):\n")
	fmt.Fprintf(w, "  1. Command line flags\n")
	fmt.Fprintf(w, "  2. Environment variables (FLASK_ENV, SECRET_KEY, DATABASE_URL, MAIL_*, PORT, ...)\n")
	fmt.Fprintf(w, "  3. .env file\n")
	fmt.Fprintf(w, "  4. Configuration file (default: config.yaml)\n\n")
}

// ConfigFile returns the configuration file path
func (f *Flags) ConfigFile() string {
	return *f.configFile
}

// ShowVersion reports whether --version was given
func (f *Flags) ShowVersion() bool {
	return *f.version
}

// GetServerPort returns the server port flag value and whether it was set
func (f *Flags) GetServerPort() (int, bool) {
	return *f.serverPort, f.fs.Changed("server.port")
}

// GetServerHost returns the server host flag value and whether it was set
func (f *Flags) GetServerHost() (string, bool) {
	return *f.serverHost, f.fs.Changed("server.host")
}

// GetDatabaseURL returns the database URL flag value and whether it was set
func (f *Flags) GetDatabaseURL() (string, bool) {
	return *f.databaseURL, f.fs.Changed("db.url")
}

// GetLogLevel returns the log level flag value and whether it was set
func (f *Flags) GetLogLevel() (string, bool) {
	return *f.logLevel, f.fs.Changed("log.level")
}

// GetLogFormat returns the log format flag value and whether it was set
func (f *Flags) GetLogFormat() (string, bool) {
	return *f.logFormat, f.fs.Changed("log.format")
}
