package mail

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	gomail "gopkg.in/mail.v2"

	"taskease/internal/config"
	"taskease/internal/core/ports"
)

// Dialer is the part of *gomail.Dialer the sender uses.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPSender struct {
	dialer Dialer
	from   string
}

func NewSMTPSender(conf *config.Config) (*SMTPSender, error) {
	if conf.SMTPHost == "" {
		return nil, errors.New("smtp host is empty")
	}
	from := conf.SMTPFrom
	if from == "" {
		from = conf.SMTPUsername
	}
	if from == "" {
		return nil, errors.New("smtp sender address is empty")
	}

	dialer := gomail.NewDialer(conf.SMTPHost, conf.SMTPPort, conf.SMTPUsername, conf.SMTPPassword)
	dialer.StartTLSPolicy = gomail.MandatoryStartTLS
	return NewSMTPSenderWithDialer(dialer, from), nil
}

func NewSMTPSenderWithDialer(dialer Dialer, from string) *SMTPSender {
	return &SMTPSender{dialer: dialer, from: from}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// LogSender writes digests to the log instead of mailing them. It is used
// when no SMTP server is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("mail not sent, smtp disabled",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_length", len(body)),
	)
	return nil
}

var (
	_ ports.MailSender = (*SMTPSender)(nil)
	_ ports.MailSender = (*LogSender)(nil)
)
