package ports

import (
	"context"
	"time"
)

type SummaryStatusRepository interface {
	HasSent(ctx context.Context, email, day string) (bool, error)
	MarkSent(ctx context.Context, email, day string) error
}

type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type DigestReport struct {
	Users   int
	Sent    int
	Skipped int
	Failed  int
}

type DigestService interface {
	SendDailySummaries(ctx context.Context, now time.Time) (DigestReport, error)
}
