package email

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/udev-hq/intern-portal-backend/internal/config"
)

// EmailService defines the interface for sending emails. Sends are
// synchronous and bounded by the configured send timeout so a stalled SMTP
// server cannot hang the surrounding request (or transaction).
type EmailService interface {
	SendWelcome(to, firstName, email, password, loginURL string) error
}

type emailServiceImpl struct {
	cfg      config.SMTPConfig
	template *template.Template
}

// layoutHTML wraps every outgoing message in the shared branded layout.
const layoutHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Subject}}</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f7; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 20px auto; background-color: #ffffff; padding: 20px; border-radius: 8px;">
    <h1 style="color: #333333; font-size: 24px;">{{.Subject}}</h1>
    <p style="color: #555555; line-height: 1.6;">{{.Body}}</p>
    <p>
      <a href="{{.LoginURL}}" style="display: inline-block; margin-top: 20px; padding: 10px 20px; background-color: #4CAF50; color: #ffffff; text-decoration: none; border-radius: 5px;">
        Login here for your account
      </a>
    </p>
    <div style="margin-top: 30px; font-size: 12px; color: #999999; text-align: center;">
      &copy; {{.Year}} U Dev. All rights reserved.
    </div>
  </div>
</body>
</html>`

type emailData struct {
	Subject  string
	Body     template.HTML
	LoginURL string
	Year     int
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.New("layout").Parse(layoutHTML)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email template: %w", err)
	}
	return &emailServiceImpl{cfg: cfg, template: tmpl}, nil
}

// SendWelcome delivers the initial credentials to a freshly registered user.
// The registration transaction treats a returned error as a reason to roll
// the whole registration back.
func (s *emailServiceImpl) SendWelcome(to, firstName, email, password, loginURL string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account has been created.\n\nEmail: %s\nPassword: %s\n\nPlease change your password after your first login.",
		firstName, email, password,
	)
	return s.send(to, "Welcome to the Intern Portal", body, loginURL)
}

func (s *emailServiceImpl) send(to, subject, plainBody, loginURL string) error {
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	htmlBody := template.HTML(strings.ReplaceAll(template.HTMLEscapeString(plainBody), "\n", "<br>"))

	var rendered bytes.Buffer
	err := s.template.Execute(&rendered, emailData{
		Subject:  subject,
		Body:     htmlBody,
		LoginURL: loginURL,
		Year:     time.Now().Year(),
	})
	if err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + rendered.String())

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.From, []string{to}, message)
	}()

	select {
	case err := <-done:
		if err != nil {
			slog.Error("Email send failed", "to", to, "subject", subject, "error", err)
			return fmt.Errorf("failed to send email: %w", err)
		}
		slog.Info("Email sent successfully", "to", to, "subject", subject)
		return nil
	case <-time.After(s.cfg.SendTimeout):
		slog.Error("Email send timed out", "to", to, "subject", subject, "timeout", s.cfg.SendTimeout)
		return fmt.Errorf("email send to %s timed out after %s", to, s.cfg.SendTimeout)
	}
}
