// Package mailer sends plain email over SMTP. The endpoint is configurable
// so development environments can point it at a capture service such as
// Mailtrap.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends email through one SMTP endpoint.
type Mailer struct {
	host   string
	port   string
	user   string
	pass   string
	sender string
}

// Config contains options for creating a new Mailer.
type Config struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Sender string
}

// New validates the configuration and returns a Mailer.
func New(cfg Config) (*Mailer, error) {
	if cfg.Host == "" || cfg.Port == "" {
		return nil, fmt.Errorf("SMTP host and port must be provided")
	}
	if cfg.User == "" || cfg.Pass == "" {
		return nil, fmt.Errorf("SMTP username and password must be provided")
	}
	if cfg.Sender == "" {
		return nil, fmt.Errorf("sender email address cannot be empty")
	}
	return &Mailer{
		host:   cfg.Host,
		port:   cfg.Port,
		user:   cfg.User,
		pass:   cfg.Pass,
		sender: cfg.Sender,
	}, nil
}

// Send delivers one message. The body may be plain text or HTML; the
// Content-Type header is inferred from basic HTML tags.
func (m *Mailer) Send(recipient, subject, body string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}
	if subject == "" {
		return fmt.Errorf("email subject cannot be empty")
	}

	contentType := "text/plain; charset=\"UTF-8\""
	lower := strings.ToLower(body)
	if strings.Contains(lower, "<html") || strings.Contains(lower, "<p>") {
		contentType = "text/html; charset=\"UTF-8\""
	}

	msg := strings.Join([]string{
		"From: " + m.sender,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType,
		"",
		body,
	}, "\r\n")

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(addr, auth, m.sender, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	return nil
}
