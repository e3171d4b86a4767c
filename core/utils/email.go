package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Akius1/cv-review-sub000/core/config"
)

// SendEmail sends a plain-text email through the configured SMTP relay.
func SendEmail(to []string, subject, body string) error {
	cfg, ok := config.GetSafe()
	if !ok {
		return fmt.Errorf("config not initialized")
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTP.Host, cfg.SMTP.Port)

	msg := strings.Join([]string{
		"From: " + cfg.SMTP.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if cfg.SMTP.User != "" {
		auth = smtp.PlainAuth("", cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.Host)
	}

	return smtp.SendMail(addr, auth, cfg.SMTP.From, to, []byte(msg))
}
