package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskease/internal/core/ports"
)

const (
	SweepJobName  = "recurring-sweep"
	DigestJobName = "daily-digest"
)

func SweepJob(recurrence ports.Recurrence) Job {
	return func(ctx context.Context) error {
		report, err := recurrence.Sweep(ctx)
		if err != nil {
			return err
		}
		zap.L().Info("recurring sweep done",
			zap.Int("scanned", report.Scanned),
			zap.Int("created", report.Created),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", report.Failed),
		)
		return nil
	}
}

// DigestJob sends the daily summaries for the day now() falls on.
func DigestJob(digest ports.DigestService, now func() time.Time) Job {
	return func(ctx context.Context) error {
		report, err := digest.SendDailySummaries(ctx, now())
		if err != nil {
			return err
		}
		zap.L().Info("daily digest done",
			zap.Int("users", report.Users),
			zap.Int("sent", report.Sent),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", report.Failed),
		)
		return nil
	}
}

// Register schedules the recurring sweep and the daily digest.
func Register(s *Scheduler, sweepSpec, digestSpec string, recurrence ports.Recurrence, digest ports.DigestService, now func() time.Time) error {
	if err := s.Add(SweepJobName, sweepSpec, SweepJob(recurrence)); err != nil {
		return err
	}
	return s.Add(DigestJobName, digestSpec, DigestJob(digest, now))
}
