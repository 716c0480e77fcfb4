package emails

import (
	"context"
	"errors"

	"go-tours/internal/config"
)

// Sender is what callers (the auth flow) depend on.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

type Service struct {
	repo *Repository
	smtp SMTPConfig
	from string
}

func NewService(repo *Repository, cfg *config.Config) *Service {
	return &Service{
		repo: repo,
		smtp: SMTPConfig{
			Host:     cfg.EmailHost,
			Port:     cfg.EmailPort,
			Username: cfg.EmailUsername,
			Password: cfg.EmailPassword,
		},
		from: cfg.EmailFrom,
	}
}

// Send queues the email and delivers it asynchronously; delivery status is
// recorded on the stored document.
func (s *Service) Send(ctx context.Context, email *Email) error {
	if len(email.To) == 0 {
		return errors.New("recipient required")
	}
	if email.From == "" {
		email.From = s.from
	}

	email.Status = EmailQueued
	if err := s.repo.Create(ctx, email); err != nil {
		return err
	}

	go s.process(email)
	return nil
}

func (s *Service) process(email *Email) {
	err := SendSMTP(s.smtp, email)
	if err != nil {
		_ = s.repo.UpdateStatus(context.Background(), email.ID, EmailFailed, err.Error())
		return
	}
	_ = s.repo.UpdateStatus(context.Background(), email.ID, EmailSent, "")
}
