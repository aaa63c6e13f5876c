package domain

import (
	"strings"
	"time"
)

type UpdateType string

const (
	UpdateTypeComment      UpdateType = "comment"
	UpdateTypeStatusChange UpdateType = "status_change"
	UpdateTypeNote         UpdateType = "note"
	UpdateTypeOther        UpdateType = "other"
)

func ParseUpdateType(value string) (UpdateType, error) {
	switch u := UpdateType(strings.TrimSpace(value)); u {
	case "":
		return UpdateTypeComment, nil
	case UpdateTypeComment, UpdateTypeStatusChange, UpdateTypeNote, UpdateTypeOther:
		return u, nil
	default:
		return "", ErrInvalidUpdateType
	}
}

// TaskUpdate is an append-only comment attached to a task.
type TaskUpdate struct {
	ID         string
	TaskID     string
	UpdateText string
	UpdatedBy  string
	UpdateType UpdateType
	CreatedAt  time.Time
}

type CreateTaskUpdateInput struct {
	TaskID     string
	UpdateText string
	UpdatedBy  string
	UpdateType UpdateType
}
