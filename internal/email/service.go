package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Service sends transactional email to platform users
type Service interface {
	SendDonationRequestAlert(ctx context.Context, to, hospitalName, message string) error
	SendCustom(ctx context.Context, to, subject, body string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type service struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg Config) Service {
	return &service{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *service) SendDonationRequestAlert(ctx context.Context, to, hospitalName, message string) error {
	subject := fmt.Sprintf("Blood donation needed at %s", hospitalName)
	return s.SendCustom(ctx, to, subject, message)
}

func (s *service) SendCustom(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
