package validation

import (
	"errors"
	"strings"
	"time"

	"taskease/internal/adapter/http/dto"
	"taskease/internal/core/domain"
)

var (
	ErrInvalidTaskPayload   = errors.New("invalid task payload")
	ErrInvalidUpdatePayload = errors.New("invalid task update payload")
)

const dateLayout = "2006-01-02"

// BuildCreateTaskInput validates a create request. Date-only due dates are
// read as midnight in loc.
func BuildCreateTaskInput(req dto.CreateTaskRequest, createdBy string, loc *time.Location) (domain.CreateTaskInput, error) {
	taskName := strings.TrimSpace(req.TaskName)
	if taskName == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	assignedTo := domain.NormalizeEmail(req.AssignedTo)
	if assignedTo == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	frequency := domain.FrequencyOneTime
	if req.TaskFrequency != nil {
		parsed, err := domain.ParseFrequency(*req.TaskFrequency)
		if err != nil {
			return domain.CreateTaskInput{}, err
		}
		frequency = parsed
	}

	var dueDate *time.Time
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		parsed, err := ParseDate(*req.DueDate, loc)
		if err != nil {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		dueDate = &parsed
	}

	return domain.CreateTaskInput{
		CreatedBy:       domain.NormalizeEmail(createdBy),
		TaskName:        taskName,
		TaskDescription: strings.TrimSpace(req.TaskDescription),
		AssignedTo:      assignedTo,
		AssignedName:    strings.TrimSpace(req.AssignedName),
		TaskFrequency:   frequency,
		DueDate:         dueDate,
		Priority:        strings.TrimSpace(req.Priority),
	}, nil
}

func BuildCreateTaskUpdateInput(req dto.CreateTaskUpdateRequest, taskID, updatedBy string) (domain.CreateTaskUpdateInput, error) {
	text := strings.TrimSpace(req.UpdateText)
	if text == "" {
		return domain.CreateTaskUpdateInput{}, ErrInvalidUpdatePayload
	}

	updateType, err := domain.ParseUpdateType(req.UpdateType)
	if err != nil {
		return domain.CreateTaskUpdateInput{}, err
	}

	return domain.CreateTaskUpdateInput{
		TaskID:     taskID,
		UpdateText: text,
		UpdatedBy:  domain.NormalizeEmail(updatedBy),
		UpdateType: updateType,
	}, nil
}

// ParseDate accepts RFC 3339 timestamps and plain dates.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if loc == nil {
		loc = time.UTC
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dateLayout, value, loc)
}
