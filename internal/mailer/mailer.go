package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Mailer is the notification sink for password-reset delivery. The reset flow
// relies on a synchronous delivery confirmation: if Send fails the caller
// rolls back the stored reset ticket.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

// Config holds SMTP transport settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers password-reset emails over plain SMTP.
type SMTPMailer struct {
	cfg Config
}

func NewSMTP(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

var _ Mailer = (*SMTPMailer)(nil)

// SendPasswordReset sends the reset link to the given address and returns only
// after the SMTP server has accepted the message.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	msg := buildResetMessage(m.cfg.From, to, resetURL)

	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprintf("%d", m.cfg.Port))
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send reset email to %q: %w", to, err)
	}
	return nil
}

func buildResetMessage(from, to, resetURL string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: Password Reset Request\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString("You requested a password reset for your finance tracker account.\r\n\r\n")
	b.WriteString("Open the link below to choose a new password:\r\n")
	b.WriteString(resetURL + "\r\n\r\n")
	b.WriteString("This link expires in 1 hour. If you didn't request a reset, ignore this email.\r\n")
	return []byte(b.String())
}
