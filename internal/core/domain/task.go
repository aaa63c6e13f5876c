package domain

import (
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyOneTime Frequency = "OneTime"
	FrequencyDaily   Frequency = "Daily"
	FrequencyWeekly  Frequency = "Weekly"
	FrequencyMonthly Frequency = "Monthly"
)

// RecurringFrequencies lists the frequencies that regenerate a successor.
var RecurringFrequencies = []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// ParseFrequency maps an API value onto a Frequency. An empty value means OneTime.
func ParseFrequency(value string) (Frequency, error) {
	switch f := Frequency(strings.TrimSpace(value)); f {
	case "":
		return FrequencyOneTime, nil
	case FrequencyOneTime, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return f, nil
	default:
		return "", ErrInvalidFrequency
	}
}

func (f Frequency) IsRecurring() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

type Task struct {
	ID              string
	CreatedBy       string
	TaskName        string
	TaskDescription string
	AssignedTo      string
	AssignedName    string
	TaskFrequency   Frequency
	DueDate         time.Time
	Priority        string
	CompletedDate   *time.Time
	// SourceTaskID is set on tasks regenerated from a recurring predecessor.
	SourceTaskID *string
	CreatedAt    time.Time
}

func (t Task) IsPending() bool {
	return t.CompletedDate == nil
}

func (t Task) IsRecurring() bool {
	return t.TaskFrequency.IsRecurring()
}

// Successor copies the descriptive fields of t into a new pending task due at dueDate.
func (t Task) Successor(dueDate, now time.Time) Task {
	sourceID := t.ID
	return Task{
		CreatedBy:       t.CreatedBy,
		TaskName:        t.TaskName,
		TaskDescription: t.TaskDescription,
		AssignedTo:      t.AssignedTo,
		AssignedName:    t.AssignedName,
		TaskFrequency:   t.TaskFrequency,
		DueDate:         dueDate,
		Priority:        t.Priority,
		SourceTaskID:    &sourceID,
		CreatedAt:       now,
	}
}

type CreateTaskInput struct {
	CreatedBy       string
	TaskName        string
	TaskDescription string
	AssignedTo      string
	AssignedName    string
	TaskFrequency   Frequency
	DueDate         *time.Time
	Priority        string
}

type CompletionResult struct {
	Completed Task
	Generated *Task
}
