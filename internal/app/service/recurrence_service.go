package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskease/internal/core/domain"
	"taskease/internal/core/ports"
)

// RecurrenceService is the only place successor tasks are created. Completion
// and the periodic sweep both go through SpawnSuccessor, which creates at most
// one successor per source task.
type RecurrenceService struct {
	taskRepository ports.TaskRepository
	userRepository ports.UserRepository
	now            Clock
}

func NewRecurrenceService(taskRepository ports.TaskRepository, userRepository ports.UserRepository) *RecurrenceService {
	return &RecurrenceService{
		taskRepository: taskRepository,
		userRepository: userRepository,
		now:            time.Now,
	}
}

func (s *RecurrenceService) WithClock(now Clock) *RecurrenceService {
	s.now = now
	return s
}

// SpawnSuccessor creates the successor of source due at dueDate. It returns nil
// without error when source is not recurring or already has a successor.
func (s *RecurrenceService) SpawnSuccessor(ctx context.Context, source domain.Task, dueDate time.Time) (*domain.Task, error) {
	if !source.IsRecurring() {
		return nil, nil
	}

	existing, err := s.taskRepository.FindSuccessor(ctx, source.ID)
	if err == nil {
		zap.L().Info("successor already exists",
			zap.String("task_id", source.ID),
			zap.String("successor_id", existing.ID),
		)
		return nil, nil
	}
	if !errors.Is(err, domain.ErrTaskNotFound) {
		return nil, fmt.Errorf("find successor of %s: %w", source.ID, err)
	}

	created, err := s.taskRepository.Create(ctx, source.Successor(dueDate, s.now()))
	if err != nil {
		if errors.Is(err, domain.ErrSuccessorExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("create successor of %s: %w", source.ID, err)
	}

	if err := s.userRepository.AdjustCounters(ctx, created.AssignedTo, domain.DeltaTaskAssigned); err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return &created, fmt.Errorf("update counters of %s: %w", created.AssignedTo, err)
		}
		zap.L().Warn("assignee of regenerated task not found", zap.String("email", created.AssignedTo))
	}

	return &created, nil
}

// Sweep regenerates every recurring task whose due date lapsed by at least one
// sweep period. A failing task is logged and skipped.
func (s *RecurrenceService) Sweep(ctx context.Context) (domain.SweepReport, error) {
	var report domain.SweepReport

	tasks, err := s.taskRepository.ListRecurring(ctx)
	if err != nil {
		return report, fmt.Errorf("list recurring tasks: %w", err)
	}

	now := s.now()
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Scanned++

		if !domain.DueForSweep(task, now) {
			report.Skipped++
			continue
		}

		created, err := s.SpawnSuccessor(ctx, task, now)
		if err != nil {
			report.Failed++
			zap.L().Error("failed to regenerate recurring task", zap.String("task_id", task.ID), zap.Error(err))
			continue
		}
		if created == nil {
			report.Skipped++
			continue
		}

		report.Created++
		zap.L().Info("recurring task regenerated",
			zap.String("task_id", task.ID),
			zap.String("successor_id", created.ID),
			zap.String("frequency", string(task.TaskFrequency)),
			zap.String("assigned_to", task.AssignedTo),
		)
	}

	return report, nil
}

var _ ports.Recurrence = (*RecurrenceService)(nil)
