package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"ticketly/internal/shared/config"
	"ticketly/pkg/logger"
)

type EmailService interface {
	SendOrderNotification(ctx context.Context, notification *OrderNotification) error
}

type smtpEmailService struct {
	cfg config.EmailConfig
	log *logger.Logger
}

func NewSMTPEmailService(cfg config.EmailConfig, log *logger.Logger) EmailService {
	return &smtpEmailService{cfg: cfg, log: log}
}

func (s *smtpEmailService) SendOrderNotification(ctx context.Context, notification *OrderNotification) error {
	if s.cfg.SMTPHost == "" {
		// No SMTP configured, log and move on so local development works.
		s.log.Info("email delivery skipped, SMTP not configured",
			"recipient", notification.RecipientEmail,
			"type", string(notification.Type),
		)
		return nil
	}

	msg := s.buildMessage(notification)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{notification.RecipientEmail}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", notification.RecipientEmail, err)
	}
	return nil
}

func (s *smtpEmailService) buildMessage(notification *OrderNotification) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", s.cfg.FromName, s.cfg.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", notification.RecipientEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", notification.Subject())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(notification.Body())
	return []byte(b.String())
}
