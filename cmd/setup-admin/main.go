// Command setup-admin creates the single admin account of the portfolio.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robcowart/portfolio/internal/config"
	"github.com/robcowart/portfolio/internal/database"
	"github.com/robcowart/portfolio/internal/service"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[0], os.Args[1:], os.Stdin, os.Stdout))
}

// prompter reads answers from a terminal without echo for secrets, or line by line otherwise
type prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

func (p *prompter) secret(label string) (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return p.line(label)
}

func run(name string, args []string, stdin io.Reader, stdout io.Writer) int {
	flags, err := config.ParseFlags(name, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	config.LoadDotEnv()
	cfg, err := config.Load(flags.ConfigFile(), flags)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to load configuration: %v\n", err)
		return 1
	}

	db, err := database.New(cfg)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		fmt.Fprintf(stdout, "Failed to run migrations: %v\n", err)
		return 1
	}

	ctx := context.Background()
	users := service.NewUserService(db, cfg)

	complete, err := users.IsSetupComplete(ctx)
	if err != nil {
		fmt.Fprintf(stdout, "Failed to check for an admin user: %v\n", err)
		return 1
	}
	if complete {
		fmt.Fprintln(stdout, "An admin user already exists. Skipping.")
		return 0
	}

	p := newPrompter(stdin, stdout)
	username, err := p.line("Enter admin username: ")
	if err != nil {
		fmt.Fprintf(stdout, "Failed to read username: %v\n", err)
		return 1
	}
	password, err := p.secret("Enter admin password: ")
	if err != nil {
		fmt.Fprintf(stdout, "Failed to read password: %v\n", err)
		return 1
	}
	confirm, err := p.secret("Confirm admin password: ")
	if err != nil {
		fmt.Fprintf(stdout, "Failed to read password: %v\n", err)
		return 1
	}

	if password != confirm {
		fmt.Fprintln(stdout, "Passwords do not match. Aborting.")
		return 0
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		fmt.Fprintln(stdout, "Username and password cannot be empty. Aborting.")
		return 0
	}

	user, err := users.PerformInitialSetup(ctx, &service.CreateUserRequest{Username: username, Password: password})
	if err != nil {
		fmt.Fprintf(stdout, "Failed to create admin user: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Admin user %q created successfully.\n", user.Username)
	return 0
}
