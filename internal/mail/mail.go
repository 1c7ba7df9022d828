// Package mail delivers plain text notifications over SMTP.
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/robcowart/portfolio/internal/config"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when the SMTP server, account or envelope is missing
var ErrNotConfigured = errors.New("mail server not configured")

// Message is a single plain text email
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Sender sends email messages
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends mail through an SMTP relay
type SMTPSender struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(cfg config.MailConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers msg. The connection honours ctx and the configured timeout.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if s.cfg.Server == "" || s.cfg.Username == "" || s.cfg.Password == "" || len(msg.To) == 0 || msg.From == "" {
		return ErrNotConfigured
	}

	addr := net.JoinHostPort(s.cfg.Server, strconv.Itoa(s.cfg.Port))
	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to mail server: %w", err)
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set mail deadline: %w", err)
	}

	c, err := smtp.NewClient(conn, s.cfg.Server)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer c.Close()

	if s.cfg.UseTLS {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return fmt.Errorf("mail server %s does not support STARTTLS", s.cfg.Server)
		}
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Server, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	if ok, _ := c.Extension("AUTH"); !ok {
		return fmt.Errorf("mail server %s does not support AUTH", s.cfg.Server)
	}
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Server)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := c.Mail(msg.From); err != nil {
		return fmt.Errorf("MAIL FROM rejected: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s rejected: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA rejected: %w", err)
	}
	if _, err := w.Write(msg.Bytes()); err != nil {
		w.Close()
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message rejected: %w", err)
	}

	s.logger.Debug("Mail sent",
		zap.String("server", addr),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)

	return c.Quit()
}

// Bytes renders the message as an RFC 5322 document with CRLF line endings
func (m Message) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", m.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(m.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", headerValue(m.Subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")

	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

// headerValue strips line breaks so user input cannot inject headers and
// encodes non-ASCII text
func headerValue(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	return mime.QEncoding.Encode("utf-8", s)
}
