package service

import (
	"fmt"

	"gymflick/internal/config"

	"gopkg.in/gomail.v2"
)

// MailSender delivers account mail. Implementations must be safe for
// concurrent use.
type MailSender interface {
	SendVerificationEmail(to, username, verifyURL string) error
}

// EmailService sends account mail over SMTP.
type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService returns an EmailService using the configured SMTP server.
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.EmailFrom,
	}
}

// SendVerificationEmail sends the account verification link to a new user.
func (s *EmailService) SendVerificationEmail(to, username, verifyURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "GymFlick - Verify your email")

	textBody := fmt.Sprintf(`Hello %s,

Welcome to GymFlick! Please verify your email address to activate your account:

%s

The link expires in 24 hours. If you didn't create a GymFlick account, you can ignore this email.

The GymFlick Team`, username, verifyURL)

	htmlBody := fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Hello %s,</h2>
  <p>Welcome to GymFlick! Please verify your email address to activate your account:</p>
  <p><a href="%s" style="display: inline-block; background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Verify email</a></p>
  <p>The link expires in 24 hours. If you didn't create a GymFlick account, you can ignore this email.</p>
  <p><strong>The GymFlick Team</strong></p>
</body>
</html>`, username, verifyURL)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
