package domain

import (
	"strings"
	"time"
)

type TaskCounters struct {
	TasksAssigned   int
	TasksCompleted  int
	TasksInProgress int
	TasksNotStarted int
}

// CounterDelta is an incremental change applied to a user's TaskCounters.
type CounterDelta struct {
	Assigned   int
	Completed  int
	InProgress int
	NotStarted int
}

var (
	DeltaTaskAssigned         = CounterDelta{Assigned: 1, NotStarted: 1}
	DeltaTaskCompleted        = CounterDelta{Completed: 1, NotStarted: -1}
	DeltaPendingTaskDeleted   = CounterDelta{Assigned: -1, NotStarted: -1}
	DeltaCompletedTaskDeleted = CounterDelta{Assigned: -1, Completed: -1}
)

// DeletionDelta picks the counter change for removing t.
func DeletionDelta(t Task) CounterDelta {
	if t.IsPending() {
		return DeltaPendingTaskDeleted
	}
	return DeltaCompletedTaskDeleted
}

func (d CounterDelta) IsZero() bool {
	return d == CounterDelta{}
}

// Apply adds d to c. Every counter is floored at zero.
func (c TaskCounters) Apply(d CounterDelta) TaskCounters {
	return TaskCounters{
		TasksAssigned:   floorZero(c.TasksAssigned + d.Assigned),
		TasksCompleted:  floorZero(c.TasksCompleted + d.Completed),
		TasksInProgress: floorZero(c.TasksInProgress + d.InProgress),
		TasksNotStarted: floorZero(c.TasksNotStarted + d.NotStarted),
	}
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

type User struct {
	ID        string
	Email     string
	Username  string
	Counters  TaskCounters
	CreatedAt time.Time
}

// NormalizeEmail is the canonical form used for every email lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleGuest   Role = "guest"
)

func ParseRole(value string) (Role, error) {
	switch r := Role(strings.TrimSpace(value)); r {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin, RoleManager, RoleGuest:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

type UserDetail struct {
	UserID      string
	PhoneNumber *string
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
