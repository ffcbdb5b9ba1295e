package service

import (
	"fmt"

	"github.com/guessnica/guessnica-backend/config"
	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

// EmailSender delivers plain-text notification mail.
type EmailSender interface {
	Send(to, subject, body string) error
}

type smtpEmailSender struct {
	cfg config.Smtp
}

func NewEmailSender(cfg *config.Config) EmailSender {
	return &smtpEmailSender{cfg: cfg.Smtp}
}

func (s *smtpEmailSender) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromEmail, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("Failed to send email")
		return fmt.Errorf("sending email: %w", err)
	}
	log.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
