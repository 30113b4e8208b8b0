// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/config"
)

// Mailer sends the transactional emails.
type Mailer interface {
	SendNotifyEmail(ctx context.Context, to string) error
	SendReminderEmail(ctx context.Context, to string) error
	SendPasswordResetEmail(ctx context.Context, to, resetLink string) error
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type NotificationService struct {
	config   config.EmailConfig
	sendMail sendMailFunc
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(cfg config.EmailConfig) *NotificationService {
	return &NotificationService{
		config:   cfg,
		sendMail: smtp.SendMail,
	}
}

func (s *NotificationService) SendNotifyEmail(ctx context.Context, to string) error {
	return s.send(ctx, to, "notify", nil)
}

func (s *NotificationService) SendReminderEmail(ctx context.Context, to string) error {
	return s.send(ctx, to, "reminder", nil)
}

func (s *NotificationService) SendPasswordResetEmail(ctx context.Context, to, resetLink string) error {
	return s.send(ctx, to, "password_reset", map[string]interface{}{
		"ResetURL":  resetLink,
		"ExpiresIn": "1 hour",
	})
}

func (s *NotificationService) send(ctx context.Context, to, templateType string, data map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmpl := s.getEmailTemplate(templateType)
	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(to, tmpl.Subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if !s.config.Configured() {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email not configured, skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		from, to, subject, body,
	))

	addr := fmt.Sprintf("%s:%s", s.config.SMTPHost, s.config.SMTPPort)
	if err := s.sendMail(addr, auth, s.config.FromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"notify": {
			Subject: "BazarCo - You're on the list",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2><span style="color:#e57373;">Bazar</span><span style="color:#64b5f6;">Co</span></h2>
	<p>Thanks for signing up. We will let you know as soon as BazarCo launches.</p>
	<p>Thank you for your interest.</p>
</body>
</html>`,
		},
		"reminder": {
			Subject: "BazarCo - Launch reminder",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Reminder</h2>
	<p>A quick reminder: BazarCo is launching soon. We will notify you on launch day and for major updates.</p>
	<p>Thank you for your interest.</p>
</body>
</html>`,
		},
		"password_reset": {
			Subject: "BazarCo - Reset your password",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Password reset</h2>
	<p>We received a request to reset your password. The link below expires in {{.ExpiresIn}}.</p>
	<a href="{{.ResetURL}}">Reset password</a>
	<p>If you did not ask for this, you can ignore this email.</p>
</body>
</html>`,
		},
	}

	if template, exists := templates[templateType]; exists {
		return template
	}

	// Default template
	return EmailTemplate{
		Subject: "BazarCo",
		Body:    "<p>{{.Message}}</p>",
	}
}
