package mapper

import (
	"time"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:              task.ID,
		CreatedBy:       task.CreatedBy,
		TaskName:        task.TaskName,
		TaskDescription: task.TaskDescription,
		AssignedTo:      task.AssignedTo,
		AssignedName:    task.AssignedName,
		TaskFrequency:   string(task.TaskFrequency),
		DueDate:         formatTime(task.DueDate),
		Priority:        task.Priority,
		CreatedAt:       formatTime(task.CreatedAt),
	}

	if task.CompletedDate != nil {
		value := formatTime(*task.CompletedDate)
		item.CompletedDate = &value
	}

	if task.SourceTaskID != nil {
		value := *task.SourceTaskID
		item.SourceTaskID = &value
	}

	return item
}

func ToTaskUpdateItems(updates []domain.TaskUpdate) []dto.TaskUpdateItem {
	items := make([]dto.TaskUpdateItem, 0, len(updates))
	for _, update := range updates {
		items = append(items, ToTaskUpdateItem(update))
	}
	return items
}

func ToTaskUpdateItem(update domain.TaskUpdate) dto.TaskUpdateItem {
	return dto.TaskUpdateItem{
		ID:         update.ID,
		TaskID:     update.TaskID,
		UpdateText: update.UpdateText,
		UpdatedBy:  update.UpdatedBy,
		UpdateType: string(update.UpdateType),
		CreatedAt:  formatTime(update.CreatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
