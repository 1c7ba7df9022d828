package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/robcowart/portfolio/internal/config"
	"github.com/robcowart/portfolio/internal/database"
	"github.com/robcowart/portfolio/internal/database/models"
	"github.com/robcowart/portfolio/internal/mail"
	"go.uber.org/zap"
)

// ContactService stores contact form submissions and notifies the site owner
type ContactService struct {
	db     *database.Database
	sender mail.Sender
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(db *database.Database, sender mail.Sender, cfg config.MailConfig, logger *zap.Logger) *ContactService {
	return &ContactService{
		db:     db,
		sender: sender,
		cfg:    cfg,
		logger: logger,
	}
}

// ContactRequest is a contact form submission
type ContactRequest struct {
	Name    string
	Email   string
	Message string
}

// Submit validates and stores the submission, then sends the notification.
// The message is stored even when the email fails; in that case the stored
// message is returned together with an error wrapping ErrNotificationFailed.
func (s *ContactService) Submit(ctx context.Context, req ContactRequest) (*models.Message, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	body := strings.TrimSpace(req.Message)
	if name == "" || email == "" || body == "" {
		return nil, ErrMissingFields
	}

	msg := &models.Message{
		Name:    name,
		Email:   email,
		Message: body,
	}
	if err := s.db.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	if err := s.sender.Send(ctx, s.notification(msg)); err != nil {
		s.logger.Error("Failed to send contact notification",
			zap.Uint("message_id", msg.ID),
			zap.Error(err),
		)
		return msg, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}

	s.logger.Info("Contact message received", zap.Uint("message_id", msg.ID))
	return msg, nil
}

func (s *ContactService) notification(msg *models.Message) mail.Message {
	var to []string
	if s.cfg.Username != "" {
		to = []string{s.cfg.Username}
	}
	return mail.Message{
		From:    s.cfg.DefaultSender,
		To:      to,
		Subject: "New Portfolio Contact Message from " + msg.Name,
		Body:    fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", msg.Name, msg.Email, msg.Message),
	}
}
