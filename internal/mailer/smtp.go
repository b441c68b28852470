package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// SMTPMailer sends letters through an authenticated SMTP relay.
type SMTPMailer struct {
	client   *mail.Client
	from     string
	fromName string
	logger   *slog.Logger
}

func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return &SMTPMailer{
		client:   client,
		from:     cfg.Username,
		fromName: cfg.FromName,
		logger:   logger.With("component", "mailer"),
	}, nil
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, to, username, house string) error {
	msg, err := buildWelcome(m.fromName, m.from, to, username, house)
	if err != nil {
		return err
	}

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending welcome letter: %w", err)
	}

	m.logger.InfoContext(ctx, "welcome letter sent", "to", to, "house", house)
	return nil
}

func buildWelcome(fromName, from, to, username, house string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.FromFormat(fromName, from); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting recipient: %w", err)
	}
	msg.Subject(welcomeSubject)
	msg.SetBodyString(mail.TypeTextPlain, welcomeBody(username, house))
	return msg, nil
}
