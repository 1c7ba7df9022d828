package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/robcowart/portfolio/internal/auth"
	"github.com/robcowart/portfolio/internal/config"
	"github.com/robcowart/portfolio/internal/database"
	"github.com/robcowart/portfolio/internal/database/models"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// dummyPasswordHash returns a hash of the production cost that matches no password
func dummyPasswordHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = auth.HashPassword("portfolio-unknown-user")
	})
	return dummyHash
}

// UserService handles the admin account and its sessions
type UserService struct {
	db  *database.Database
	cfg *config.Config
}

// NewUserService creates a new user service
func NewUserService(db *database.Database, cfg *config.Config) *UserService {
	return &UserService{
		db:  db,
		cfg: cfg,
	}
}

// CreateUserRequest represents a request to create a user
type CreateUserRequest struct {
	Username string
	Password string
}

// CreateUser hashes the password and stores a new user
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password cannot be empty")
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	if err := s.db.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", mapDBError(err))
	}

	return user, nil
}

// Authenticate checks the credentials and returns the user with a signed
// session token. Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.db.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Unknown users cost one bcrypt comparison like known ones
			_ = auth.VerifyPassword(password, dummyPasswordHash())
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.IssueSessionToken(
		user.ID,
		user.Username,
		s.cfg.Session.Secret,
		s.cfg.Session.Issuer,
		s.cfg.Session.Lifetime,
	)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// VerifySession validates a session token and returns the user it belongs to.
// Tokens of users that no longer exist are rejected.
func (s *UserService) VerifySession(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseSessionToken(token, s.cfg.Session.Secret, s.cfg.Session.Issuer)
	if err != nil {
		return nil, err
	}

	user, err := s.db.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, auth.ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// PerformInitialSetup creates the admin account if none exists yet
func (s *UserService) PerformInitialSetup(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	isComplete, err := s.db.IsSetupComplete(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check setup status: %w", err)
	}
	if isComplete {
		return nil, ErrSetupComplete
	}

	return s.CreateUser(ctx, req)
}

// IsSetupComplete checks if an admin account exists
func (s *UserService) IsSetupComplete(ctx context.Context) (bool, error) {
	return s.db.IsSetupComplete(ctx)
}
