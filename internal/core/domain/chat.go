package domain

import "time"

const SystemUsername = "System"

type ChatMessage struct {
	ID        string
	UserID    *string
	Username  string
	Message   string
	IsSystem  bool
	Timestamp time.Time
}
